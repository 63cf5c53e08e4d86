package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"museumguide/internal/modules/access"
	"museumguide/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes — ticket verification needs no authentication; the
// code itself is the credential.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/tickets/verify/:code", h.Verify)
}

func (h *Handler) RegisterRoutes(staff *gin.RouterGroup) {
	tickets := staff.Group("/tickets")
	{
		tickets.GET("", h.List)
		tickets.POST("", h.Create)
		tickets.GET("/museums", h.Museums)
		tickets.GET("/:id", h.Get)
		tickets.PUT("/:id", h.Update)
		tickets.DELETE("/:id", h.Delete)
	}
}

// Verify handles GET /api/v1/tickets/verify/:code
func (h *Handler) Verify(c *gin.Context) {
	t, err := h.service.VerifyByCode(c.Request.Context(), c.Param("code"))
	switch {
	case errors.Is(err, ErrInvalidTicket):
		response.Error(c, http.StatusNotFound, "INVALID_TICKET", "Invalid ticket")
		return
	case errors.Is(err, ErrExpiredTicket):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TICKET_EXPIRED",
				"message": "Ticket expired",
			},
			"ticket": t,
		})
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "VERIFY_FAILED", "Failed to verify ticket")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"valid":  true,
		"ticket": t,
	})
}

// List handles GET /api/v1/tickets, filtered through the caller's scope.
func (h *Handler) List(c *gin.Context) {
	scope := access.Resolve(access.CallerFromContext(c))

	tickets, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch tickets")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": tickets})
}

// Create handles POST /api/v1/tickets
func (h *Handler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	if !scope.All && scope.MuseumID != req.MuseumID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot issue tickets for another museum")
		return
	}

	t, err := h.service.Create(c.Request.Context(), req.MuseumID)
	if err != nil {
		if errors.Is(err, ErrMuseumNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Museum not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create ticket")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

// Museums handles GET /api/v1/tickets/museums — the scoped museum list for
// the ticket creation form.
func (h *Handler) Museums(c *gin.Context) {
	scope := access.Resolve(access.CallerFromContext(c))

	museums, err := h.service.MuseumsForScope(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch museums")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"museums": museums})
}

// Get handles GET /api/v1/tickets/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	t, err := h.service.Get(c.Request.Context(), id, scope)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch ticket")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

// Update handles PUT /api/v1/tickets/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	t, err := h.service.Update(c.Request.Context(), id, req, scope)
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
	case errors.Is(err, ErrMuseumNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Museum not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ticket fields")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update ticket")
	default:
		response.Success(c, http.StatusOK, gin.H{"ticket": t})
	}
}

// Delete handles DELETE /api/v1/tickets/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	if err := h.service.Delete(c.Request.Context(), id, scope); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete ticket")
		return
	}

	response.NoContent(c)
}
