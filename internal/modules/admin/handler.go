package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"museumguide/internal/pkg/response"
	"museumguide/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(superadmin *gin.RouterGroup) {
	users := superadmin.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api/v1/users
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Get handles GET /api/v1/users/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "FETCH_FAILED", "Failed to fetch user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// Create handles POST /api/v1/users
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); len(fields) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", fields)
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "CREATE_FAILED", "Failed to create user")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// Update handles PUT /api/v1/users/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); len(fields) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", fields)
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err, "UPDATE_FAILED", "Failed to update user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// Delete handles DELETE /api/v1/users/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "DELETE_FAILED", "Failed to delete user")
		return
	}
	response.NoContent(c)
}

func (h *Handler) handleError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrMuseumNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Museum not found")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email is already taken")
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMuseumRequired),
		errors.Is(err, ErrMuseumForbidden):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
