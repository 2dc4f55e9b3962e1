package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/pos/backend/internal/application/sales"
)

// KOTHandler handles kitchen order ticket API endpoints
type KOTHandler struct {
	BaseHandler
	kotService *salesapp.KOTService
}

// NewKOTHandler creates a new KOTHandler
func NewKOTHandler(kotService *salesapp.KOTService) *KOTHandler {
	return &KOTHandler{kotService: kotService}
}

// CreateTicket issues the next kitchen order ticket for the business day
func (h *KOTHandler) CreateTicket(c *gin.Context) {
	var req salesapp.CreateKOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.kotService.CreateTicket(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// ListTickets returns tickets for a business date (defaults to today)
func (h *KOTHandler) ListTickets(c *gin.Context) {
	tickets, err := h.kotService.ListTickets(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tickets)
}

// RegisterRoutes registers kitchen order ticket routes
func (h *KOTHandler) RegisterRoutes(rg *gin.RouterGroup) {
	kots := rg.Group("/kots")
	{
		kots.POST("", h.CreateTicket)
		kots.GET("", h.ListTickets)
	}
}
