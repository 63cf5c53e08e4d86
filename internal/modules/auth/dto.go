package auth

import "museumguide/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest signs up a museum together with its first admin.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email" validate:"required,email"`
	Password    string `json:"password" binding:"required" validate:"required,min=8"`
	MuseumTitle string `json:"museum_title" binding:"required" validate:"required,min=2,max=200"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
