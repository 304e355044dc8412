package auth

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/pkg/checksum"
	"github.com/amber-studios/workspace-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AuthUseCase autenticación y ciclo de vida de la sesión: login, validación
// por el middleware, logout y cambios de contraseña del propio usuario.
type AuthUseCase struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	jwtCfg   JWTConfig

	mu sync.Mutex // serializa las secuencias leer-modificar-escribir
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accounts repository.AccountRepository, sessions repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, sessions: sessions, jwtCfg: jwtCfg}
}

// Login verifica credenciales y resuelve el país de la sesión:
//   - admin debe elegir un país válido en el formulario;
//   - una cuenta sm sin país almacenado adopta el elegido (se persiste);
//   - un país elegido distinto del almacenado se rechaza.
//
// Con credenciales correctas persiste la sesión con su TTL y emite el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	loginID := strings.TrimSpace(in.LoginID)
	accounts := uc.accounts.List()
	idx := -1
	for i, a := range accounts {
		if a.LoginID == loginID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrUnauthorized
	}
	acc := accounts[idx]
	if !checksum.Matches(in.Password, acc.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	chosen := entity.NormalizeCountry(in.Country)
	var country string
	switch acc.Role {
	case entity.RoleAdmin:
		if chosen == "" {
			return nil, fmt.Errorf("%w: seleccione un país", domain.ErrInvalidInput)
		}
		if !entity.IsCountryCode(chosen) {
			return nil, fmt.Errorf("%w: país no soportado", domain.ErrInvalidInput)
		}
		country = chosen
	case entity.RoleSM:
		stored := entity.NormalizeCountry(acc.Country)
		switch {
		case stored == "" && chosen != "":
			// Cuenta heredada sin país: adopta el elegido.
			accounts[idx].Country = chosen
			accounts[idx].UpdatedAt = time.Now()
			if err := uc.accounts.Replace(accounts); err != nil {
				return nil, err
			}
			country = chosen
		case chosen != "" && stored != "" && stored != chosen:
			return nil, fmt.Errorf("%w: país incorrecto", domain.ErrCountryMismatch)
		default:
			country = stored
		}
	default:
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	ses := entity.Session{
		ID:          uuid.NewString(),
		Role:        acc.Role,
		AccountType: acc.AccountType,
		LoginID:     acc.LoginID,
		Name:        acc.Name,
		Surname:     acc.Surname,
		Country:     country,
		SignedInAt:  now,
		ExpiresAt:   now.Add(uc.jwtCfg.TTL),
	}
	// Poda perezosa: aprovechar el login para retirar sesiones vencidas.
	_ = uc.sessions.DeleteExpired(now)
	if err := uc.sessions.Put(ses); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, ses.ID, ses.LoginID, ses.Role,
		ses.AccountType, ses.Country, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Session: toSessionResponse(ses)}, nil
}

// Validate resuelve el token a su sesión persistida. La expiración se
// comprueba en el momento de la lectura; una sesión vencida se elimina y se
// reporta como expirada.
func (uc *AuthUseCase) Validate(tokenString string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	ses, ok := uc.sessions.Get(claims.ID)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if ses.Expired(time.Now()) {
		_ = uc.sessions.Delete(ses.ID)
		return nil, domain.ErrSessionExpired
	}
	return ses, nil
}

// Logout invalida la sesión. Es idempotente.
func (uc *AuthUseCase) Logout(ses *entity.Session) error {
	if ses == nil {
		return nil
	}
	return uc.sessions.Delete(ses.ID)
}

// ChangePassword cambia la contraseña del propio actor. Las cuentas
// operation no pueden autogestionarse: su contraseña la restablece el admin.
func (uc *AuthUseCase) ChangePassword(ses *entity.Session, in dto.ChangePasswordRequest) error {
	if ses == nil {
		return domain.ErrUnauthorized
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	accounts := uc.accounts.List()
	for i, a := range accounts {
		if a.LoginID != ses.LoginID || a.Role != ses.Role {
			continue
		}
		if a.Role == entity.RoleSM && a.AccountType == entity.AccountTypeOperation {
			return fmt.Errorf("%w: la contraseña de operation la gestiona el admin", domain.ErrForbidden)
		}
		if !checksum.Matches(in.OldPassword, a.PasswordHash) {
			return fmt.Errorf("%w: contraseña actual incorrecta", domain.ErrUnauthorized)
		}
		if len(in.NewPassword) < entity.MinPasswordLen {
			return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, entity.MinPasswordLen)
		}
		accounts[i].PasswordHash = checksum.DJB2(in.NewPassword)
		accounts[i].UpdatedAt = time.Now()
		return uc.accounts.Replace(accounts)
	}
	return domain.ErrAccountNotFound
}

func toSessionResponse(ses entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		LoginID:     ses.LoginID,
		Role:        ses.Role,
		AccountType: ses.AccountType,
		Name:        ses.Name,
		Surname:     ses.Surname,
		Country:     ses.Country,
		SignedInAt:  ses.SignedInAt,
		ExpiresAt:   ses.ExpiresAt,
	}
}

// SessionResponse proyección pública de una sesión ya validada (endpoint /me).
func SessionResponse(ses *entity.Session) dto.SessionResponse {
	return toSessionResponse(*ses)
}
