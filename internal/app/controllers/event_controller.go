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

// EventController handles agenda events and their dispatch
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEvent stores a draft event
// @Summary Create an event
// @Description Creates an agenda event as an unsent draft
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SchoolEvent true "Event"
// @Success 201 {object} dto.APIResponse{data=models.SchoolEvent} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event data"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var event models.SchoolEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados do evento inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.eventService.CreateEvent(ctx, &event)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// ListEvents returns all events
// @Summary List events
// @Description Returns all events in chronological order
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SchoolEvent} "Events retrieved successfully"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events))
}

// UpdateEvent replaces an event record
// @Summary Update event
// @Description Replaces an event record
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body models.SchoolEvent true "Event"
// @Success 200 {object} dto.APIResponse{data=models.SchoolEvent} "Event updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	var event models.SchoolEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados do evento inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	event.ID = ctx.Param("id")

	updated, err := c.eventService.UpdateEvent(ctx, &event)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteEvent removes an event record
// @Summary Delete event
// @Description Removes an event record
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	if err := c.eventService.DeleteEvent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Evento removido"}))
}

// DispatchEvent publishes an event and runs the guardian broadcast
// @Summary Dispatch event
// @Description Publishes the event and sends it to the selected audience. A single-student audience returns a WhatsApp link.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.DispatchResult} "Dispatch completed"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Dispatch already in progress"
// @Failure 422 {object} dto.ErrorResponse "Recipient has no phone number"
// @Router /events/{id}/dispatch [post]
func (c *EventController) DispatchEvent(ctx *gin.Context) {
	result, err := c.eventService.Dispatch(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
