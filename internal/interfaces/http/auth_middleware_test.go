package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazen/balcao/internal/application/auth"
	apphttp "github.com/lojazen/balcao/internal/interfaces/http"
	pkgjwt "github.com/lojazen/balcao/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "segredo-de-teste-para-unit-tests"
	testOperator  = "operador"
	testIssuer    = "balcao-test"
	testExpMin    = 60
)

// buildTestApp monta uma aplicação Fiber mínima com uma rota protegida pelo
// AuthMiddleware e um handler que devolve o operador extraído do token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"operator": apphttp.GetOperator(c),
			})
		},
	)
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testOperator, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

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
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoPassa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, validToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testOperator, body["operator"],
		"o operador do token deve estar disponível no contexto")
}

func TestAuthMiddleware_SemHeaderRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalformadoRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoErradoRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"só o esquema Bearer é aceito")
}

func TestAuthMiddleware_SecretErradoRetorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("outro-segredo-completamente-distinto", testOperator, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login do operador
// ──────────────────────────────────────────────────────────────────────────────

func buildLoginApp(t *testing.T) *fiber.App {
	t.Helper()
	uc, err := auth.NewUseCase(auth.Config{
		Username:   testOperator,
		Password:   "senha-secreta",
		JWTSecret:  testJWTSecret,
		Issuer:     testIssuer,
		ExpMinutes: testExpMin,
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/login", apphttp.NewAuthHandler(uc).Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_CredenciaisCorretasEmitemToken(t *testing.T) {
	app := buildLoginApp(t)
	resp := postLogin(t, app, `{"username":"operador","password":"senha-secreta"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])

	// O token emitido deve ser aceito pelo middleware.
	operator, err := pkgjwt.Parse(testJWTSecret, body["token"])
	require.NoError(t, err)
	assert.Equal(t, testOperator, operator)
}

func TestLogin_SenhaErradaRetorna401(t *testing.T) {
	app := buildLoginApp(t)
	resp := postLogin(t, app, `{"username":"operador","password":"senha-errada"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UsuarioErradoRetorna401(t *testing.T) {
	app := buildLoginApp(t)
	resp := postLogin(t, app, `{"username":"intruso","password":"senha-secreta"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"usuário e senha incorretos devolvem a mesma resposta")
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testOperator, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	operator, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testOperator, operator)
}

func TestJWT_TokenExpiradoRetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testOperator, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve ser rejeitado")
}
