package model

// LoginRequest is the DTO for POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// LoginResponse carries the signed bearer token for admin routes.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}
