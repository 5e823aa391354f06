package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/app/services"
	"github.com/pintando7/escolinha/internal/middleware"
)

// AppointmentController handles appointment operations
type AppointmentController struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentController creates a new AppointmentController
func NewAppointmentController(appointmentService *services.AppointmentService) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
	}
}

// CreateAppointment schedules an agenda item
// @Summary Create an appointment
// @Description Schedules an agenda item. Appointments are never edited in place.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Appointment true "Appointment"
// @Success 201 {object} dto.APIResponse{data=models.Appointment} "Appointment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid appointment data"
// @Router /appointments [post]
func (c *AppointmentController) CreateAppointment(ctx *gin.Context) {
	var appointment models.Appointment
	if err := ctx.ShouldBindJSON(&appointment); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados do compromisso inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.appointmentService.CreateAppointment(ctx, &appointment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// ListAppointments returns all appointments
// @Summary List appointments
// @Description Returns all appointments in chronological order
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Appointment} "Appointments retrieved successfully"
// @Router /appointments [get]
func (c *AppointmentController) ListAppointments(ctx *gin.Context) {
	appointments, err := c.appointmentService.ListAppointments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(appointments))
}

// DeleteAppointment removes an appointment
// @Summary Delete appointment
// @Description Removes an appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Appointment deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Appointment not found"
// @Router /appointments/{id} [delete]
func (c *AppointmentController) DeleteAppointment(ctx *gin.Context) {
	if err := c.appointmentService.DeleteAppointment(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Compromisso removido"}))
}
