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

// MealLogController handles meal log operations
type MealLogController struct {
	mealLogService *services.MealLogService
}

// NewMealLogController creates a new MealLogController
func NewMealLogController(mealLogService *services.MealLogService) *MealLogController {
	return &MealLogController{
		mealLogService: mealLogService,
	}
}

// CreateLog records a meal
// @Summary Create a meal log
// @Description Records a meal for a student. Logs are immutable once created.
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MealLog true "Meal log entry"
// @Success 201 {object} dto.APIResponse{data=models.MealLog} "Log created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid log data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /logs [post]
func (c *MealLogController) CreateLog(ctx *gin.Context) {
	var log models.MealLog
	if err := ctx.ShouldBindJSON(&log); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados do registro inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.mealLogService.CreateLog(ctx, &log)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// ListLogs returns meal logs
// @Summary List meal logs
// @Description Returns meal logs, most recent first, optionally filtered by student
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.MealLog} "Logs retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /logs [get]
func (c *MealLogController) ListLogs(ctx *gin.Context) {
	var (
		logs []*models.MealLog
		err  error
	)

	if studentID := ctx.Query("studentId"); studentID != "" {
		logs, err = c.mealLogService.ListLogsForStudent(ctx, studentID)
	} else {
		logs, err = c.mealLogService.ListLogs(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(logs))
}
