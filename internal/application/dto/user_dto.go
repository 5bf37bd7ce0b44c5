package dto

// LoginRequest credenciales del operador.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y datos del operador.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// VerifyPINRequest body para POST /api/auth/pin.
type VerifyPINRequest struct {
	Gate string `json:"gate" validate:"required,oneof=billing analytics stock_adjustment"`
	PIN  string `json:"pin" validate:"required"`
}

// OperatorResponse identidad de la sesión actual.
type OperatorResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
