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

// ExpenseController handles expense operations
type ExpenseController struct {
	expenseService *services.ExpenseService
}

// NewExpenseController creates a new ExpenseController
func NewExpenseController(expenseService *services.ExpenseService) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
	}
}

// CreateExpense records an expenditure
// @Summary Create an expense
// @Description Records a school expenditure. Unknown categories fall back to "Outros".
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Expense true "Expense"
// @Success 201 {object} dto.APIResponse{data=models.Expense} "Expense created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid expense data"
// @Router /expenses [post]
func (c *ExpenseController) CreateExpense(ctx *gin.Context) {
	var expense models.Expense
	if err := ctx.ShouldBindJSON(&expense); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados da despesa inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.expenseService.CreateExpense(ctx, &expense)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// ListExpenses returns expenses
// @Summary List expenses
// @Description Returns expenses, most recent first, optionally filtered by month and search term
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month filter (AAAA-MM)"
// @Param search query string false "Description search term"
// @Success 200 {object} dto.APIResponse{data=[]models.Expense} "Expenses retrieved successfully"
// @Router /expenses [get]
func (c *ExpenseController) ListExpenses(ctx *gin.Context) {
	expenses, err := c.expenseService.ListExpenses(ctx, ctx.Query("month"), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(expenses))
}

// UpdateExpense replaces an expense record
// @Summary Update expense
// @Description Replaces an expense record
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body models.Expense true "Expense"
// @Success 200 {object} dto.APIResponse{data=models.Expense} "Expense updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Router /expenses/{id} [put]
func (c *ExpenseController) UpdateExpense(ctx *gin.Context) {
	var expense models.Expense
	if err := ctx.ShouldBindJSON(&expense); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Dados da despesa inválidos")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	expense.ID = ctx.Param("id")

	updated, err := c.expenseService.UpdateExpense(ctx, &expense)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteExpense removes an expense record
// @Summary Delete expense
// @Description Removes an expense record
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Expense deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Router /expenses/{id} [delete]
func (c *ExpenseController) DeleteExpense(ctx *gin.Context) {
	if err := c.expenseService.DeleteExpense(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Despesa removida"}))
}
