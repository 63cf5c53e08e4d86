package admin

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	MuseumID *int64 `json:"museum_id"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password"` // empty keeps the current password
	Role     string `json:"role" binding:"required"`
	MuseumID *int64 `json:"museum_id"`
}
