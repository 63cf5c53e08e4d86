package catalog

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

// RegisterStaffRoutes — room and object CRUD, available to admins and
// superadmins (scope narrows what each sees).
func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	rooms := staff.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.POST("", h.CreateRoom)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
	}

	objects := staff.Group("/objects")
	{
		objects.GET("", h.ListObjects)
		objects.POST("", h.CreateObject)
		objects.GET("/:id", h.GetObject)
		objects.PUT("/:id", h.UpdateObject)
		objects.DELETE("/:id", h.DeleteObject)
	}
}

// RegisterSuperadminRoutes — museum CRUD is superadmin territory.
func (h *Handler) RegisterSuperadminRoutes(super *gin.RouterGroup) {
	museums := super.Group("/museums")
	{
		museums.GET("", h.ListMuseums)
		museums.POST("", h.CreateMuseum)
		museums.GET("/:id", h.GetMuseum)
		museums.PUT("/:id", h.UpdateMuseum)
		museums.DELETE("/:id", h.DeleteMuseum)
	}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, ErrMuseumNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Museum not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

/* ---------- MUSEUM HANDLERS ---------- */

func (h *Handler) ListMuseums(c *gin.Context) {
	scope := access.Resolve(access.CallerFromContext(c))

	museums, err := h.service.ListMuseums(c.Request.Context(), scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"museums": museums})
}

func (h *Handler) GetMuseum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	m, err := h.service.GetMuseum(c.Request.Context(), id, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"museum": m})
}

func (h *Handler) CreateMuseum(c *gin.Context) {
	var req CreateMuseumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.CreateMuseum(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"museum": m})
}

func (h *Handler) UpdateMuseum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateMuseumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.UpdateMuseum(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"museum": m})
}

func (h *Handler) DeleteMuseum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMuseum(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

/* ---------- ROOM HANDLERS ---------- */

func (h *Handler) ListRooms(c *gin.Context) {
	scope := access.Resolve(access.CallerFromContext(c))

	rooms, err := h.service.ListRooms(c.Request.Context(), scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	room, err := h.service.GetRoom(c.Request.Context(), id, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	room, err := h.service.CreateRoom(c.Request.Context(), req, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	if err := h.service.DeleteRoom(c.Request.Context(), id, scope); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

/* ---------- OBJECT HANDLERS ---------- */

func (h *Handler) ListObjects(c *gin.Context) {
	scope := access.Resolve(access.CallerFromContext(c))

	objects, err := h.service.ListObjects(c.Request.Context(), scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"objects": objects})
}

func (h *Handler) GetObject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	o, err := h.service.GetObject(c.Request.Context(), id, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"object": o})
}

func (h *Handler) CreateObject(c *gin.Context) {
	var req CreateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	o, err := h.service.CreateObject(c.Request.Context(), req, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"object": o})
}

func (h *Handler) UpdateObject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	o, err := h.service.UpdateObject(c.Request.Context(), id, req, scope)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"object": o})
}

func (h *Handler) DeleteObject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	scope := access.Resolve(access.CallerFromContext(c))
	if err := h.service.DeleteObject(c.Request.Context(), id, scope); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
