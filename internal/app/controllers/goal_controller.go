package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/app/services"
	"github.com/pintando7/escolinha/internal/middleware"
)

// GoalController handles the weekly goal checklist
type GoalController struct {
	goalService *services.GoalService
}

// NewGoalController creates a new GoalController
func NewGoalController(goalService *services.GoalService) *GoalController {
	return &GoalController{
		goalService: goalService,
	}
}

// CreateGoal adds a checklist item
// @Summary Create a weekly goal
// @Description Adds an incomplete checklist item
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGoalRequest true "Goal text"
// @Success 201 {object} dto.APIResponse{data=models.WeeklyGoal} "Goal created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid goal data"
// @Router /goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Texto da meta é obrigatório")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	goal, err := c.goalService.CreateGoal(ctx, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      goal,
		Timestamp: time.Now(),
	})
}

// ListGoals returns the checklist
// @Summary List weekly goals
// @Description Returns the checklist in creation order
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.WeeklyGoal} "Goals retrieved successfully"
// @Router /goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	goals, err := c.goalService.ListGoals(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(goals))
}

// ToggleGoal flips the completed flag
// @Summary Toggle goal completion
// @Description Flips the completed flag relative to the state the client saw
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body dto.ToggleGoalRequest true "State the client last saw"
// @Success 200 {object} dto.APIResponse{data=models.WeeklyGoal} "Goal toggled successfully"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Router /goals/{id}/toggle [patch]
func (c *GoalController) ToggleGoal(ctx *gin.Context) {
	var req dto.ToggleGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	goal, err := c.goalService.ToggleGoal(ctx, ctx.Param("id"), req.Completed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(goal))
}

// DeleteGoal removes a checklist item
// @Summary Delete goal
// @Description Removes a checklist item
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Goal deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Router /goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	if err := c.goalService.DeleteGoal(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Meta removida"}))
}
