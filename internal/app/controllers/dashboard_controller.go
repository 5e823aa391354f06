package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/app/services"
	"github.com/pintando7/escolinha/internal/middleware"
)

// DashboardController serves the aggregated read models
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Summary returns the student KPI cards
// @Summary Dashboard summary
// @Description Returns the roster size and allergy KPI counters
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummary} "Summary computed"
// @Router /dashboard/summary [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.dashboardService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// Expenses returns the monthly expense aggregation
// @Summary Expense summary
// @Description Aggregates one month of expenses with category breakdown and trend
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month selector (YYYY-MM), defaults to current"
// @Success 200 {object} dto.APIResponse{data=dto.ExpenseSummary} "Summary computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid month selector"
// @Router /dashboard/expenses [get]
func (c *DashboardController) Expenses(ctx *gin.Context) {
	summary, err := c.dashboardService.ExpenseSummary(ctx, ctx.Query("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// Calendar returns the month grid
// @Summary Calendar month
// @Description Builds the month grid with events and appointments bucketed per day
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month 1-12, defaults to current"
// @Success 200 {object} dto.APIResponse{data=dto.CalendarMonth} "Calendar computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid year or month"
// @Router /dashboard/calendar [get]
func (c *DashboardController) Calendar(ctx *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Ano inválido")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = parsed
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Mês inválido")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		month = parsed
	}

	calendar, err := c.dashboardService.Calendar(ctx, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(calendar))
}

// Meals returns the per-meal consumption overview
// @Summary Meal overview
// @Description Summarizes one day of meal logs per meal type
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day selector (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.APIResponse "Overview computed"
// @Router /dashboard/meals [get]
func (c *DashboardController) Meals(ctx *gin.Context) {
	overview, err := c.dashboardService.MealOverview(ctx, ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}
