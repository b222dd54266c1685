package payload

import "github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
}

type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"omitempty,max=100"`
	LastName  string `json:"lastname"  validate:"omitempty,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Mobile    string `json:"mobile"    validate:"omitempty,e164"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}
