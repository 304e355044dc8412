package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/pkg/checksum"
)

// AccountUseCase directorio de cuentas: altas, listados y gestión de
// contraseñas, siempre limitado al país de la sesión del administrador.
type AccountUseCase struct {
	accounts repository.AccountRepository

	mu sync.Mutex // serializa las secuencias leer-modificar-escribir
}

// NewAccountUseCase construye el caso de uso de cuentas.
func NewAccountUseCase(accounts repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// EnsureRootAdmin siembra el administrador raíz si no existe. Devuelve true
// si lo creó. Se invoca en el arranque; garantiza el invariante de un único
// admin en todo el sistema.
func (uc *AccountUseCase) EnsureRootAdmin() (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	accounts := uc.accounts.List()
	for _, a := range accounts {
		if a.Role == entity.RoleAdmin && a.LoginID == entity.AdminLoginID {
			return false, nil
		}
	}
	accounts = append(accounts, entity.Account{
		Role:         entity.RoleAdmin,
		LoginID:      entity.AdminLoginID,
		PasswordHash: checksum.DJB2(entity.DefaultAdminPassword),
		CreatedAt:    time.Now(),
	})
	return true, uc.accounts.Replace(accounts)
}

// MigrateAccountTypes migración heredada: las cuentas sm con tipo "personal"
// o sin tipo pasan a tipo "sm".
func (uc *AccountUseCase) MigrateAccountTypes() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	accounts := uc.accounts.List()
	dirty := false
	for i, a := range accounts {
		if a.Role == entity.RoleSM && (a.AccountType == "personal" || a.AccountType == "") {
			accounts[i].AccountType = entity.AccountTypeSM
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return uc.accounts.Replace(accounts)
}

// Create da de alta una cuenta sm en el país del admin. Solo el admin crea
// cuentas; las operation no llevan nombre y apellido.
func (uc *AccountUseCase) Create(ses *entity.Session, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if !ses.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	country := entity.NormalizeCountry(ses.Country)
	if country == "" || !entity.IsCountryCode(country) {
		return nil, fmt.Errorf("%w: la sesión del admin no tiene país", domain.ErrInvalidInput)
	}

	loginID := strings.TrimSpace(in.LoginID)
	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)
	accountType := in.AccountType
	if accountType == "" {
		accountType = entity.AccountTypeSM
	}

	if loginID == "" {
		return nil, fmt.Errorf("%w: falta el login", domain.ErrInvalidInput)
	}
	if len(in.Password) < entity.MinPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, entity.MinPasswordLen)
	}
	if !allowedAccountType(accountType) {
		return nil, fmt.Errorf("%w: tipo de cuenta desconocido", domain.ErrInvalidInput)
	}
	if accountType == entity.AccountTypeOperation {
		// Las cuentas operation son funcionales, no personales.
		name, surname = "", ""
	} else if name == "" || surname == "" {
		return nil, fmt.Errorf("%w: nombre y apellido requeridos", domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	accounts := uc.accounts.List()
	if loginExistsInCountry(accounts, loginID, country) {
		return nil, fmt.Errorf("%w: el login ya existe en este país", domain.ErrDuplicate)
	}

	acc := entity.Account{
		Role:         entity.RoleSM,
		AccountType:  accountType,
		LoginID:      loginID,
		PasswordHash: checksum.DJB2(in.Password),
		Name:         name,
		Surname:      surname,
		Country:      country,
		CreatedAt:    time.Now(),
	}
	accounts = append(accounts, acc)
	if err := uc.accounts.Replace(accounts); err != nil {
		return nil, err
	}
	resp := toAccountResponse(acc)
	return &resp, nil
}

// List devuelve las cuentas sm del país de la sesión. Solo admin.
func (uc *AccountUseCase) List(ses *entity.Session) ([]dto.AccountResponse, error) {
	if !ses.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	country := entity.NormalizeCountry(ses.Country)
	var out []dto.AccountResponse
	for _, a := range uc.accounts.List() {
		if a.Role != entity.RoleSM {
			continue
		}
		if country != "" && entity.NormalizeCountry(a.Country) != country {
			continue
		}
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

// Delete elimina una cuenta sm del país de la sesión. Solo admin; el borrado
// es definitivo.
func (uc *AccountUseCase) Delete(ses *entity.Session, loginID string) error {
	if !ses.IsAdmin() {
		return domain.ErrForbidden
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	country := entity.NormalizeCountry(ses.Country)
	accounts := uc.accounts.List()
	kept := accounts[:0]
	removed := false
	for _, a := range accounts {
		if a.Role == entity.RoleSM && a.LoginID == loginID &&
			entity.NormalizeCountry(a.Country) == country {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return domain.ErrAccountNotFound
	}
	return uc.accounts.Replace(kept)
}

// ResetPassword restablece la contraseña de una cuenta sm del país de la
// sesión. Solo admin (es la única vía para las cuentas operation).
func (uc *AccountUseCase) ResetPassword(ses *entity.Session, loginID string, in dto.ResetPasswordRequest) error {
	if !ses.IsAdmin() {
		return domain.ErrForbidden
	}
	newPassword := strings.TrimSpace(in.NewPassword)
	if len(newPassword) < entity.MinPasswordLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, entity.MinPasswordLen)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	country := entity.NormalizeCountry(ses.Country)
	accounts := uc.accounts.List()
	for i, a := range accounts {
		if a.Role == entity.RoleSM && a.LoginID == loginID &&
			entity.NormalizeCountry(a.Country) == country {
			accounts[i].PasswordHash = checksum.DJB2(newPassword)
			accounts[i].UpdatedAt = time.Now()
			return uc.accounts.Replace(accounts)
		}
	}
	return domain.ErrAccountNotFound
}

func allowedAccountType(t string) bool {
	for _, a := range entity.AllowedAccountTypes {
		if a == t {
			return true
		}
	}
	return false
}

// loginExistsInCountry unicidad por (login, país) sin distinguir mayúsculas.
func loginExistsInCountry(accounts []entity.Account, loginID, country string) bool {
	for _, a := range accounts {
		if a.Role == entity.RoleSM &&
			strings.EqualFold(strings.TrimSpace(a.LoginID), loginID) &&
			entity.NormalizeCountry(a.Country) == country {
			return true
		}
	}
	return false
}

func toAccountResponse(a entity.Account) dto.AccountResponse {
	t := a.AccountType
	if t == "" {
		t = entity.AccountTypeSM
	}
	return dto.AccountResponse{
		LoginID:     a.LoginID,
		AccountType: t,
		Name:        a.Name,
		Surname:     a.Surname,
		Country:     a.Country,
		CreatedAt:   a.CreatedAt,
	}
}
