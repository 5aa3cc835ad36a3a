package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fanbase/gatehouse/service"
)

// APIHandlers are the protected business endpoints gated by the auth
// middleware and role guard.
type APIHandlers struct {
	plans  *service.PlanCatalog
	chat   *service.ChatLog
	groups *service.GroupDirectory
}

// NewAPIHandlers creates handlers for the protected API surface.
func NewAPIHandlers(plans *service.PlanCatalog, chat *service.ChatLog, groups *service.GroupDirectory) *APIHandlers {
	return &APIHandlers{
		plans:  plans,
		chat:   chat,
		groups: groups,
	}
}

// Profile returns the caller's resolved identity.
func (h *APIHandlers) Profile(c *gin.Context) {
	identity, ok := IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": identity})
}

// ListPlans returns the subscription plan catalog.
func (h *APIHandlers) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.plans.List()})
}

// CreatePlan adds a subscription plan owned by the caller.
func (h *APIHandlers) CreatePlan(c *gin.Context) {
	identity, ok := IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Price    string `json:"price" binding:"required"`
		Currency string `json:"currency" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "name, price and currency are required")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "price must be a non-negative decimal")
		return
	}

	plan := h.plans.Create(identity.UserID, req.Name, price, req.Currency)

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// ListMessages returns the chat feed.
func (h *APIHandlers) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.chat.List()})
}

// PostMessage appends a chat message authored by the caller.
func (h *APIHandlers) PostMessage(c *gin.Context) {
	identity, ok := IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "body is required")
		return
	}

	msg := h.chat.Post(identity.UserID, req.Body)

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// ListGroups returns the moderation groups.
func (h *APIHandlers) ListGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": h.groups.List()})
}

// CreateGroup adds a moderation group owned by the caller.
func (h *APIHandlers) CreateGroup(c *gin.Context) {
	identity, ok := IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "name is required")
		return
	}

	group := h.groups.Create(req.Name, identity.UserID)

	c.JSON(http.StatusCreated, gin.H{"group": group})
}
