package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/pos/backend/internal/application/finance"
)

// ExpenseHandler handles expense voucher API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// expenseListQuery bounds an expense list to a date range
type expenseListQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// RecordExpense records an expense under a freshly minted voucher number
func (h *ExpenseHandler) RecordExpense(c *gin.Context) {
	var req financeapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	voucher, err := h.expenseService.RecordExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, voucher)
}

// GetExpense returns an expense voucher by ID
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	voucher, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// ListExpenses returns vouchers incurred within [from, to)
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var query expenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := time.Parse("2006-01-02", query.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", query.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	vouchers, err := h.expenseService.ListExpenses(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vouchers)
}

// RegisterRoutes registers expense voucher routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.RecordExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
	}
}
