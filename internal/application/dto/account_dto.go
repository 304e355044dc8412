package dto

import "time"

// CreateAccountRequest alta de cuenta por el administrador; el país se toma
// siempre de la sesión del admin, nunca del cuerpo.
type CreateAccountRequest struct {
	LoginID     string `json:"loginId"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
}

// AccountResponse proyección pública de una cuenta (sin hash de contraseña).
type AccountResponse struct {
	LoginID     string    `json:"loginId"`
	AccountType string    `json:"accountType"`
	Name        string    `json:"name,omitempty"`
	Surname     string    `json:"surname,omitempty"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ResetPasswordRequest restablecimiento de contraseña por el administrador.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}
