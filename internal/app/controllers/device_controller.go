package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/middleware"
	"github.com/pintando7/escolinha/internal/pkg/push"
)

// DeviceController registers push devices
type DeviceController struct {
	pushService *push.Service
}

// NewDeviceController creates a new DeviceController
func NewDeviceController(pushService *push.Service) *DeviceController {
	return &DeviceController{
		pushService: pushService,
	}
}

// RegisterDevice registers a push token
// @Summary Register device
// @Description Registers a device token for broadcast push notifications
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterDeviceRequest true "Device token"
// @Success 201 {object} dto.APIResponse{data=models.Device} "Device registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid device data"
// @Router /devices [post]
func (c *DeviceController) RegisterDevice(ctx *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados do dispositivo inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	device, err := c.pushService.RegisterDevice(ctx, req.Platform, req.Token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      device,
		Timestamp: time.Now(),
	})
}
