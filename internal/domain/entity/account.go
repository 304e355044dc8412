package entity

import (
	"strings"
	"time"
)

// Roles válidos para Account.
const (
	RoleAdmin = "admin"
	RoleSM    = "sm"
)

// Tipos de cuenta dentro del rol "sm".
const (
	AccountTypeSM        = "sm"
	AccountTypeDealer    = "dealer"
	AccountTypeOperation = "operation"
)

// AllowedAccountTypes tipos aceptados al crear cuentas.
var AllowedAccountTypes = []string{AccountTypeSM, AccountTypeDealer, AccountTypeOperation}

// MinPasswordLen longitud mínima de contraseña heredada de la app original.
const MinPasswordLen = 4

// Login y contraseña por defecto del administrador raíz sembrado al arrancar.
const (
	AdminLoginID         = "admin"
	DefaultAdminPassword = "1234"
)

// Country país soportado por la aplicación.
type Country struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// SupportedCountries países operativos; el código es la clave de partición
// de todos los datos (tenant).
var SupportedCountries = []Country{
	{Code: "pl", Label: "Poland"},
	{Code: "ge", Label: "Georgia"},
	{Code: "co", Label: "Colombia"},
	{Code: "lv", Label: "Latvia"},
	{Code: "lt", Label: "Lithuania"},
}

// NormalizeCountry acepta código o nombre completo y devuelve el código en
// minúscula ("Poland" -> "pl"). Cadena vacía si no se reconoce el nombre.
func NormalizeCountry(c string) string {
	s := strings.ToLower(strings.TrimSpace(c))
	for _, sc := range SupportedCountries {
		if s == sc.Code || s == strings.ToLower(sc.Label) {
			return sc.Code
		}
	}
	return s
}

// IsCountryCode indica si code es uno de los países soportados.
func IsCountryCode(code string) bool {
	for _, sc := range SupportedCountries {
		if sc.Code == code {
			return true
		}
	}
	return false
}

// Account cuenta de usuario. Invariantes: existe exactamente un registro con
// rol admin en todo el sistema; las cuentas "sm" son únicas por
// (loginId, country) sin distinguir mayúsculas en el login.
type Account struct {
	Role         string    `json:"role"`
	AccountType  string    `json:"accountType,omitempty"` // vacío para admin
	LoginID      string    `json:"loginId"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name,omitempty"`
	Surname      string    `json:"surname,omitempty"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// FullName nombre y apellido tal como aparecen en los CSV de turnos.
func (a Account) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(a.Name) + " " + strings.TrimSpace(a.Surname))
}

// IsPersonalSM indica si la cuenta es un SM personal: destinatario de la
// matriz de confirmaciones (excluye dealer y operation).
func (a Account) IsPersonalSM() bool {
	return a.Role == RoleSM && a.AccountType != AccountTypeDealer && a.AccountType != AccountTypeOperation
}
