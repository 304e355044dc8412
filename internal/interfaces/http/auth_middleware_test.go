package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amber-studios/workspace-api/internal/application/auth"
	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
	"github.com/amber-studios/workspace-api/internal/infrastructure/storage"
	apphttp "github.com/amber-studios/workspace-api/internal/interfaces/http"
	"github.com/amber-studios/workspace-api/pkg/checksum"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

// buildTestEnv monta la API completa sobre un almacén en memoria, con el
// admin raíz y una cuenta sm de Polonia ya sembrados.
func buildTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := kvstore.NewMemStore()
	accountRepo := storage.NewAccountRepository(kv)
	updateRepo := storage.NewUpdateRepository(kv)
	sessionRepo := storage.NewSessionRepository(kv)
	lastReadRepo := storage.NewLastReadRepository(kv)

	require.NoError(t, accountRepo.Replace([]entity.Account{
		{Role: entity.RoleAdmin, LoginID: entity.AdminLoginID, PasswordHash: checksum.DJB2("1234"), CreatedAt: time.Now()},
		{Role: entity.RoleSM, AccountType: entity.AccountTypeSM, LoginID: "anna.k",
			PasswordHash: checksum.DJB2("1234"), Name: "Anna", Surname: "Kowalska", Country: "pl", CreatedAt: time.Now()},
	}))

	authUC := auth.NewAuthUseCase(accountRepo, sessionRepo, auth.JWTConfig{
		Secret: testJWTSecret,
		Issuer: "workspace-test",
		TTL:    time.Hour,
	})
	accountUC := usecase.NewAccountUseCase(accountRepo)
	updateUC := usecase.NewUpdateUseCase(updateRepo, lastReadRepo)
	matrixUC := usecase.NewMatrixUseCase(accountRepo, updateUC)
	exportUC := usecase.NewExportUseCase(updateUC, nopPDF{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		AccountUC:  accountUC,
		UpdateUC:   updateUC,
		MatrixUC:   matrixUC,
		ExportUC:   exportUC,
		ScheduleUC: usecase.NewScheduleUseCase(accountRepo, emptySchedules{}),
	})
	return &testEnv{app: app, authUC: authUC}
}

type nopPDF struct{}

func (nopPDF) UpdatesRegister(string, []entity.Update) ([]byte, error) { return []byte("%PDF"), nil }

type emptySchedules struct{}

func (emptySchedules) Tables(string, string) ([]usecase.ScheduleFile, error) { return nil, nil }

// login hace login real contra la API y devuelve el header Authorization.
func (e *testEnv) login(t *testing.T, loginID, password, country string) string {
	t.Helper()
	body, _ := json.Marshal(dto.LoginRequest{LoginID: loginID, Password: password, Country: country})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login de prueba debe funcionar")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	env := buildTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	env := buildTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/auth/me", "Bearer token.invalido.aqui", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SesionValidaLlegaAlHandler(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "anna.k", "1234", "")

	resp := env.do(t, http.MethodGet, "/api/auth/me", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ses dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ses))
	assert.Equal(t, "anna.k", ses.LoginID)
	assert.Equal(t, "pl", ses.Country)
}

func TestAuthMiddleware_LogoutInvalidaElToken(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "anna.k", "1234", "")

	resp := env.do(t, http.MethodPost, "/api/auth/logout", tok, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/auth/me", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"tras el logout el mismo token deja de valer")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin y mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_SMBloqueadoEnCuentas(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "anna.k", "1234", "")

	resp := env.do(t, http.MethodGet, "/api/accounts/", tok, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireAdmin_AdminAccede(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "admin", "1234", "pl")

	resp := env.do(t, http.MethodGet, "/api/accounts/", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorMapping_SMNoPublica(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "anna.k", "1234", "")

	resp := env.do(t, http.MethodPost, "/api/updates/", tok, dto.CreateUpdateRequest{Text: "no"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestErrorMapping_ContenidoVacio(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "admin", "1234", "pl")

	resp := env.do(t, http.MethodPost, "/api/updates/", tok, dto.CreateUpdateRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "EMPTY_CONTENT")
}

func TestErrorMapping_NoEncontrado(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "admin", "1234", "pl")

	resp := env.do(t, http.MethodPost, "/api/updates/no-existe/approve", tok, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestExportCSV_EndToEnd(t *testing.T) {
	env := buildTestEnv(t)
	tok := env.login(t, "admin", "1234", "pl")

	resp := env.do(t, http.MethodPost, "/api/updates/", tok, dto.CreateUpdateRequest{Text: "aviso"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/updates/export.csv", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "updates_pl.csv")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"aviso"`)
}
