package dto

import "time"

// RegisterRequest entrada para registro de socios.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// CreateAdminRequest alta de administradores (solo CLI).
type CreateAdminRequest struct {
	Email    string
	Password string
	Name     string
}

// UserResponse salida de un usuario (sin password), incluye el estado biométrico.
type UserResponse struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Role               string    `json:"role"`
	SubscriptionStatus string    `json:"subscription_status"`
	BiometricDeviceID  string    `json:"biometric_device_id"`
	IsBioMetricActive  bool      `json:"is_bio_metric_active"`
	BioMetricAccess    bool      `json:"bio_metric_access"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
