package dto

import "time"

// LoginRequest credenciales del formulario de acceso. Country es el país
// elegido en el selector: obligatorio para admin, contrastado contra el país
// de la cuenta para el resto.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Country  string `json:"country"`
}

// SessionResponse proyección pública de la sesión (sin id interno).
type SessionResponse struct {
	LoginID     string    `json:"loginId"`
	Role        string    `json:"role"`
	AccountType string    `json:"accountType,omitempty"`
	Name        string    `json:"name,omitempty"`
	Surname     string    `json:"surname,omitempty"`
	Country     string    `json:"country"`
	SignedInAt  time.Time `json:"signedInAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// LoginResponse token portador más la sesión establecida.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
