package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/pos/backend/internal/application/partner"
)

// CustomerHandler handles customer and advance balance API endpoints
type CustomerHandler struct {
	BaseHandler
	advanceService *partnerapp.AdvanceService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(advanceService *partnerapp.AdvanceService) *CustomerHandler {
	return &CustomerHandler{advanceService: advanceService}
}

// CreateCustomer registers a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.advanceService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetCustomer returns a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.advanceService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// FindCustomer looks up a customer by phone number
func (h *CustomerHandler) FindCustomer(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		h.BadRequest(c, "Query parameter phone is required")
		return
	}

	customer, err := h.advanceService.FindCustomerByPhone(c.Request.Context(), phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// TopUpAdvance credits a counter top-up to the customer's advance balance
func (h *CustomerHandler) TopUpAdvance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.TopUpAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.advanceService.TopUpAdvance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// ListAdvanceHistory returns a customer's advance ledger, newest first
func (h *CustomerHandler) ListAdvanceHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	entries, err := h.advanceService.ListAdvanceHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// RegisterRoutes registers customer and advance routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.FindCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("/:id/advance/topup", h.TopUpAdvance)
		customers.GET("/:id/advance/history", h.ListAdvanceHistory)
	}
}
