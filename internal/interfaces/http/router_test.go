package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazen/balcao/internal/application/auth"
	"github.com/lojazen/balcao/internal/application/backup"
	"github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/application/usecase"
	"github.com/lojazen/balcao/internal/infrastructure/boltdb"
	apphttp "github.com/lojazen/balcao/internal/interfaces/http"
)

// buildAPI monta a aplicação completa sobre um banco temporário e devolve o
// app junto com um token já autenticado.
func buildAPI(t *testing.T) (*fiber.App, string) {
	t.Helper()
	store, err := boltdb.Open(filepath.Join(t.TempDir(), "balcao-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	productRepo := boltdb.NewProductRepository(store)
	clientRepo := boltdb.NewClientRepository(store)
	vendorRepo := boltdb.NewVendorRepository(store)
	settingsRepo := boltdb.NewSettingsRepository(store)
	txRunner := boltdb.NewTxRunner(store)

	authUC, err := auth.NewUseCase(auth.Config{
		Username:   testOperator,
		Password:   "senha-secreta",
		JWTSecret:  testJWTSecret,
		Issuer:     testIssuer,
		ExpMinutes: testExpMin,
	})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(productRepo, settingsRepo),
		ClientUC:   usecase.NewClientUseCase(clientRepo),
		VendorUC:   usecase.NewVendorUseCase(vendorRepo),
		SettingsUC: usecase.NewSettingsUseCase(settingsRepo),
		Checkout:   sales.NewCheckoutUseCase(txRunner, clientRepo),
		Report:     sales.NewReportUseCase(settingsRepo, nil),
		BackupUC:   backup.NewUseCase(txRunner, productRepo, clientRepo, vendorRepo, settingsRepo),
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
		StoreName:  "Loja Teste",
	})

	resp := do(t, app, http.MethodPost, "/api/auth/login",
		`{"username":"operador","password":"senha-secreta"}`, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	return app, login["token"]
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fluxo completo: produto → venda → livro → backup
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FluxoDeVenda(t *testing.T) {
	app, token := buildAPI(t)

	// Cadastrar produto.
	resp := do(t, app, http.MethodPost, "/api/products",
		`{"description":"Arroz 5kg","price":"24.90","quantity":10,"category":"mercearia"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product map[string]any
	decode(t, resp, &product)
	require.EqualValues(t, 1, product["id"])

	// Vender 2 unidades.
	resp = do(t, app, http.MethodPost, "/api/sales",
		`{"lines":[{"productId":1,"quantity":2}],"paymentMethod":"dinheiro"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale map[string]any
	decode(t, resp, &sale)
	assert.Equal(t, "49.8", sale["total"], "2 × 24.90 = 49.80")
	assert.NotEmpty(t, sale["id"])

	// Estoque refletido no catálogo.
	resp = do(t, app, http.MethodGet, "/api/products/1", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &product)
	assert.EqualValues(t, 8, product["quantity"])
	assert.EqualValues(t, 2, product["sold"])

	// Venda registrada no livro.
	resp = do(t, app, http.MethodGet, "/api/sales", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ledger []map[string]any
	decode(t, resp, &ledger)
	require.Len(t, ledger, 1)
	assert.Equal(t, sale["id"], ledger[0]["id"])

	// Resumo por forma de pagamento.
	resp = do(t, app, http.MethodGet, "/api/sales/summary", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary map[string]any
	decode(t, resp, &summary)
	assert.EqualValues(t, 1, summary["count"])
}

func TestAPI_CheckoutSemEstoqueRetorna422(t *testing.T) {
	app, token := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/products",
		`{"description":"Azeite","price":"39.90","quantity":1}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/sales",
		`{"lines":[{"productId":1,"quantity":5}],"paymentMethod":"pix"}`, token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Contains(t, body["message"], "Azeite", "o erro deve nomear o produto")
}

func TestAPI_RotasProtegidasExigemToken(t *testing.T) {
	app, _ := buildAPI(t)

	for _, path := range []string{"/api/products", "/api/clients", "/api/sales", "/api/backup"} {
		resp := do(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s sem token deve falhar", path)
		resp.Body.Close()
	}
}

func TestAPI_BackupExportaERestaura(t *testing.T) {
	app, token := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/products",
		`{"description":"Café torrado","price":"12.00","quantity":5}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Exportar o snapshot.
	resp = do(t, app, http.MethodGet, "/api/backup", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment",
		"a exportação deve sugerir download")
	snapshot, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	// Apagar o produto e restaurar o snapshot.
	resp = do(t, app, http.MethodDelete, "/api/products/1", "", token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/backup/restore", string(snapshot), token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodGet, "/api/products/1", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product map[string]any
	decode(t, resp, &product)
	assert.Equal(t, "Café torrado", product["description"])
}

func TestAPI_RestoreInvalidoRetorna400(t *testing.T) {
	app, token := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/backup/restore", `{"version":"1"}`, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "INVALID_BACKUP", body["code"])
}
