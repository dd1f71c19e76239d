package models

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

type LoginResponse struct {
	Token    string      `json:"token"`
	UserType string      `json:"userType"`
	User     interface{} `json:"user,omitempty"`
}

// CreateRoleAccountRequest is used by an account one level up to create a
// subordinate (admin creates coordinators, coordinators create district
// coordinators, and so on down to field employees).
type CreateRoleAccountRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	District    string `json:"district,omitempty"`
}
