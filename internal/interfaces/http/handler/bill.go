package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/pos/backend/internal/application/sales"
)

// BillHandler handles bill and split-payment API endpoints
type BillHandler struct {
	BaseHandler
	billingService *salesapp.BillingService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billingService *salesapp.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// CreateBill opens a bill-closing session
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req salesapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// GetBill returns a bill with its payment lines
func (h *BillHandler) GetBill(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// ListOpenBills returns all bills still in an open split session
func (h *BillHandler) ListOpenBills(c *gin.Context) {
	bills, err := h.billingService.ListOpenBills(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bills)
}

// AddPaymentLine records a payment line on an open bill
func (h *BillHandler) AddPaymentLine(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req salesapp.AddPaymentLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.AddPaymentLine(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// RemovePaymentLine deletes a payment line from an open bill
func (h *BillHandler) RemovePaymentLine(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	bill, err := h.billingService.RemovePaymentLine(c.Request.Context(), billID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// CloseBill validates the split and stamps the fiscal-year bill number
func (h *BillHandler) CloseBill(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	// the request body is optional: closes without advance lines need none
	var req salesapp.CloseBillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	bill, err := h.billingService.CloseBill(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// RegisterRoutes registers bill routes
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.CreateBill)
		bills.GET("", h.ListOpenBills)
		bills.GET("/:id", h.GetBill)
		bills.POST("/:id/lines", h.AddPaymentLine)
		bills.DELETE("/:id/lines/:lineId", h.RemovePaymentLine)
		bills.POST("/:id/close", h.CloseBill)
	}
}
