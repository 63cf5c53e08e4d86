package guide

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"museumguide/internal/modules/ticket"
	"museumguide/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the visitor endpoints. They are public; the ticket
// code in the path is the only credential.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/guide")
	{
		g.GET("/rooms/:code", h.Rooms)
		g.GET("/objects/:code/:roomTitle", h.RoomObjects)
		g.GET("/object/:code/:objectTitle", h.ObjectDetails)
	}
}

// Rooms handles GET /api/v1/guide/rooms/:code
func (h *Handler) Rooms(c *gin.Context) {
	rooms, err := h.service.Rooms(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// RoomObjects handles GET /api/v1/guide/objects/:code/:roomTitle
func (h *Handler) RoomObjects(c *gin.Context) {
	objects, err := h.service.RoomObjects(c.Request.Context(), c.Param("code"), c.Param("roomTitle"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"objects": objects})
}

// ObjectDetails handles GET /api/v1/guide/object/:code/:objectTitle
func (h *Handler) ObjectDetails(c *gin.Context) {
	o, err := h.service.ObjectDetails(c.Request.Context(), c.Param("code"), c.Param("objectTitle"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"object": o})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ticket.ErrInvalidTicket):
		response.Error(c, http.StatusNotFound, "INVALID_TICKET", "Invalid ticket")
	case errors.Is(err, ticket.ErrExpiredTicket):
		response.Error(c, http.StatusForbidden, "TICKET_EXPIRED", "Ticket expired")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrObjectNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Object not found")
	default:
		response.Error(c, http.StatusInternalServerError, "GUIDE_FAILED", "Failed to load guide data")
	}
}
