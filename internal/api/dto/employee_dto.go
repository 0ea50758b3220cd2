package dto

import (
	"time"

	"github.com/spades-ems/portal/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Employee  EmployeeResponse `json:"employee"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// EmployeeRequest payload for account creation and update.
type EmployeeRequest struct {
	DiscordID string       `json:"discord_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Password  string       `json:"password,omitempty"`
	Grade     domain.Grade `json:"grade"`
	Active    *bool        `json:"active"`
}

// EmployeeResponse describes one staff account.
type EmployeeResponse struct {
	ID        string       `json:"id"`
	DiscordID string       `json:"discord_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Grade     domain.Grade `json:"grade"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
}
