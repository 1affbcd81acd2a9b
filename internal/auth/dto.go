package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// LoginRequest carries the credential payload submitted to the login route.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public shape of an operator account.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

// LoginResponse is returned after a successful credential exchange.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// FromModel maps a persisted user onto its public DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
