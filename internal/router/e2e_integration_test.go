//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - Full sale cycle: login → create store/category/product/seller →
//     open till → sale → stock decremented → close till with difference
//   - Sale without an open till is rejected
//   - Sale exceeding stock is rejected and leaves stock untouched
//   - Double till open for the same store is rejected

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitorduarteebb/otica2/internal/config"
	"github.com/vitorduarteebb/otica2/internal/infra"
	"github.com/vitorduarteebb/otica2/internal/router"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("otica_test"),
		tcPostgres.WithUsername("otica"),
		tcPostgres.WithPassword("otica"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		BusinessName:       "Ótica Teste",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), 10)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
		INSERT INTO users (username, name, password_hash, role, active)
		VALUES ('admin', 'Admin E2E', ?, 'admin', true)
		ON CONFLICT (username) DO NOTHING`, string(hash)).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin1234"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken, engine: r}
}

// seedCatalog creates a store, category, product with initial stock and a
// seller, returning their IDs.
func seedCatalog(t *testing.T, env *testEnv, initialStock int) (storeID, productID, sellerID string) {
	t.Helper()

	storeResp := do(t, env.server, "POST", "/v1/stores",
		jsonBody(t, map[string]any{"name": "Loja Centro", "address": "Av. Central, 1"}), env.token)
	require.Equal(t, http.StatusCreated, storeResp.StatusCode)
	var store struct {
		ID string `json:"id"`
	}
	decodeJSON(t, storeResp, &store)

	catResp := do(t, env.server, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": "Armações"}), env.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	prodBody := map[string]any{
		"name":        "Armação Ray-Ban RB5154",
		"brand":       "Ray-Ban",
		"price":       "250.00",
		"cost":        "120.00",
		"category_id": cat.ID,
	}
	if initialStock > 0 {
		prodBody["initial_stock"] = []map[string]any{
			{"store_id": store.ID, "quantity": initialStock},
		}
	}
	prodResp := do(t, env.server, "POST", "/v1/products", jsonBody(t, prodBody), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	decodeJSON(t, prodResp, &prod)
	require.NotEmpty(t, prod.Code)

	sellerResp := do(t, env.server, "POST", "/v1/sellers",
		jsonBody(t, map[string]any{"name": "Vendedor E2E", "store_id": store.ID}), env.token)
	require.Equal(t, http.StatusCreated, sellerResp.StatusCode)
	var seller struct {
		ID string `json:"id"`
	}
	decodeJSON(t, sellerResp, &seller)

	return store.ID, prod.ID, seller.ID
}

func openTill(t *testing.T, env *testEnv, storeID, initialAmount string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/cash-till-sessions/open",
		jsonBody(t, map[string]any{"store_id": storeID, "initial_amount": initialAmount}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &session)
	return session.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)
	storeID, productID, sellerID := seedCatalog(t, env, 20)

	sessionID := openTill(t, env, storeID, "100.00")

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"store_id":       storeID,
			"seller_id":      sellerID,
			"customer_name":  "Maria Oliveira",
			"payment_method": "dinheiro",
			"items": []map[string]any{
				{"product_id": productID, "quantity": 3},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID          string          `json:"id"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		Items       []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("750.00")),
		"total esperado 750.00, veio %s", sale.TotalAmount)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)

	// Stock decremented 20 → 17
	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		TotalStock int `json:"total_stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.TotalStock)

	// List sales for today
	listResp := do(t, env.server, "GET", fmt.Sprintf("/v1/sales?store_id=%s", storeID), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.EqualValues(t, 1, list.Total)

	// Close: drawer should hold initial 100 + cash sale 750
	closeResp := do(t, env.server, "POST", "/v1/cash-till-sessions/"+sessionID+"/close",
		jsonBody(t, map[string]any{"final_amount_reported": "850.00"}), env.token)
	require.Equal(t, http.StatusOK, closeResp.StatusCode)
	var closed struct {
		Status     string           `json:"status"`
		Difference *decimal.Decimal `json:"difference"`
	}
	decodeJSON(t, closeResp, &closed)
	assert.Equal(t, "fechado", closed.Status)
	require.NotNil(t, closed.Difference)
	assert.True(t, closed.Difference.IsZero(), "diferença esperada 0, veio %s", closed.Difference)
}

func TestE2E_SaleWithoutOpenTillRejected(t *testing.T) {
	env := setupTestEnv(t)
	storeID, productID, sellerID := seedCatalog(t, env, 5)

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"store_id":       storeID,
			"seller_id":      sellerID,
			"payment_method": "pix",
			"items":          []map[string]any{{"product_id": productID, "quantity": 1}},
		}), env.token)
	defer saleResp.Body.Close()
	assert.Equal(t, http.StatusConflict, saleResp.StatusCode)
}

func TestE2E_InsufficientStockRejected(t *testing.T) {
	env := setupTestEnv(t)
	storeID, productID, sellerID := seedCatalog(t, env, 2)
	openTill(t, env, storeID, "0.00")

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"store_id":       storeID,
			"seller_id":      sellerID,
			"payment_method": "dinheiro",
			"items":          []map[string]any{{"product_id": productID, "quantity": 5}},
		}), env.token)
	defer saleResp.Body.Close()
	assert.Equal(t, http.StatusConflict, saleResp.StatusCode)

	// Stock untouched
	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		TotalStock int `json:"total_stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 2, prod.TotalStock)
}

func TestE2E_DoubleTillOpenRejected(t *testing.T) {
	env := setupTestEnv(t)
	storeID, _, _ := seedCatalog(t, env, 1)
	openTill(t, env, storeID, "50.00")

	resp := do(t, env.server, "POST", "/v1/cash-till-sessions/open",
		jsonBody(t, map[string]any{"store_id": storeID, "initial_amount": "50.00"}), env.token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
