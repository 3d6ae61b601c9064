package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
	apphttp "github.com/credsim/bandeiras-api/internal/interfaces/http"
	pkgjwt "github.com/credsim/bandeiras-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "card-flags-test"
	testExpMin    = 60
)

var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func testManager() *pkgjwt.Manager {
	return pkgjwt.NewManager(testJWTSecret, testExpMin, testIssuer)
}

// buildTestApp constrói uma aplicação Fiber mínima com:
//   - AuthMiddleware para validar o JWT e carregar os locals
//   - RequireRole para autorizar o acesso
//   - Um handler dummy que devolve 200 se passar pelos middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testManager()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c).String(),
			})
		},
	)
	return app
}

// tokenForRole gera um JWT com o papel indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := testManager().Generate(testUserID, role)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara um GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Admin acessa rota restrita a admin → 200.
func TestRequireRole_AdminAcessaRotaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin deve acessar rota restrita a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, testUserID.String(), body["user_id"],
		"o user_id do token deve estar nos locals")
}

// Papel entre os permitidos (multi-papel) → 200.
func TestRequireRole_UserAcessaRotaUserOuAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleUser, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"user deve acessar rota que permite user ou admin")
}

// Papel diferente do exigido → 403.
func TestRequireRole_PartnerBloqueadoEmRotaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RolePartner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"partner não deve acessar rota restrita a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "acesso negado")
}

// Vendedor bloqueado em rota só de parceiro → 403.
func TestRequireRole_UserBloqueadoEmRotaPartner(t *testing.T) {
	app := buildTestApp(entity.RolePartner)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sem Authorization header → 401.
func TestAuthMiddleware_SemHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Header sem o prefixo Bearer → 401.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token malformado → 401.
func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer nao-e-um-jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token assinado com outro segredo → 401.
func TestAuthMiddleware_AssinaturaInvalida(t *testing.T) {
	other := pkgjwt.NewManager("outro-segredo", testExpMin, testIssuer)
	tok, err := other.Generate(testUserID, entity.RoleAdmin)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token de outro segredo deve ser rejeitado")
}

// Token expirado → 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	expired := pkgjwt.NewManager(testJWTSecret, -10, testIssuer)
	tok, err := expired.Generate(testUserID, entity.RoleAdmin)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado deve ser rejeitado")
}
