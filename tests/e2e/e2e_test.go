//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - login → abrir turno → registrar venta → cerrar → historial
//   - edit + soft delete survive a service restart (persistence round-trip)

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libreria/internal/config"
	"libreria/internal/infra"
	"libreria/internal/repository"
	"libreria/internal/router"
	"libreria/internal/service"
	"libreria/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
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
	admin  string // admin JWT
	staff  string // staff JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("libreria_test"),
		tcPostgres.WithUsername("libreria"),
		tcPostgres.WithPassword("libreria"),
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
		Port:                  8000,
		Env:                   "test",
		JWTSecret:             "test-secret-key",
		JWTExpirationHours:    8,
		DatabaseURL:           pgURL,
		RedisURL:              rdURL,
		MetadataURL:           "http://localhost:9999", // sidecar ausente en e2e
		MetadataCacheTTLHours: 1,
		WorkerPoolSize:        1,
		ReportStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed credentials through the same path the seeder uses
	credSvc := service.NewCredencialService(repository.NewCredencialRepository(db), cfg.JWTSecret, cfg.JWTExpirationHours)
	require.NoError(t, credSvc.Bootstrap(ctx, []service.BootstrapEntry{
		{Identidad: "admin", Nombre: "Admin E2E", Secreto: "libreria2026", Tipo: "admin_password"},
		{Identidad: "F", Nombre: "Flor", Secreto: "f12", Tipo: "pin"},
	}))

	metadataClient := infra.NewMetadataClient(cfg.MetadataURL)
	metadataCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	metadataSvc := service.NewMetadataService(metadataClient, metadataCB, rdb, time.Hour)
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, metadataCB, metadataSvc, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		admin:  login(t, srv, "admin", "libreria2026"),
		staff:  login(t, srv, "F", "f12"),
	}
}

func login(t *testing.T, srv *httptest.Server, identidad, secreto string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"identidad": identidad, "secreto": secreto}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func adminCred() map[string]string {
	return map[string]string{"identidad": "admin", "secreto": "libreria2026"}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloCompletoDeTurno(t *testing.T) {
	env := setupTestEnv(t)

	// 1. Abrir turno con desglose
	abrirResp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{
			"admin":   adminCred(),
			"fecha":   time.Now().Format("2006-01-02"),
			"periodo": "manana",
			"desglose": []map[string]any{
				{"etiqueta": "billetes_grandes", "monto": 800},
				{"etiqueta": "billetes_chicos", "monto": 200},
			},
		}), env.staff)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)
	var turno struct {
		ID           string `json:"id"`
		Estado       string `json:"estado"`
		MontoInicial string `json:"monto_inicial"`
	}
	decodeJSON(t, abrirResp, &turno)
	assert.Equal(t, "abierto", turno.Estado)
	assert.Equal(t, "1000", turno.MontoInicial)

	// 2. Segundo abrir → conflicto
	dupResp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{
			"admin":    adminCred(),
			"fecha":    time.Now().Format("2006-01-02"),
			"periodo":  "tarde",
			"desglose": []map[string]any{{"etiqueta": "otros", "monto": 100}},
		}), env.staff)
	require.Equal(t, http.StatusConflict, dupResp.StatusCode)
	dupResp.Body.Close()

	// 3. Registrar venta en efectivo con vuelto
	movResp := do(t, env.server, "POST", "/v1/caja/movimientos",
		jsonBody(t, map[string]any{
			"turno_id":    turno.ID,
			"tipo":        "venta",
			"metodo":      "efectivo",
			"monto":       500,
			"descripcion": "Rayuela",
			"entregado":   1000,
			"atribucion":  map[string]string{"identidad": "F", "secreto": "f12"},
		}), env.staff)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)
	var mov struct {
		ID     string `json:"id"`
		Vuelto string `json:"vuelto"`
	}
	decodeJSON(t, movResp, &mov)
	assert.Equal(t, "500", mov.Vuelto)

	// 4. Estado vivo refleja los saldos
	estadoResp := do(t, env.server, "GET", "/v1/caja/estado", nil, env.staff)
	require.Equal(t, http.StatusOK, estadoResp.StatusCode)
	var estado struct {
		Totales struct {
			SaldoEfectivo string `json:"saldo_efectivo"`
		} `json:"totales"`
	}
	decodeJSON(t, estadoResp, &estado)
	assert.Equal(t, "1500", estado.Totales.SaldoEfectivo)

	// 5. Cerrar con efectivo contado exacto
	cerrarResp := do(t, env.server, "POST", "/v1/caja/cerrar",
		jsonBody(t, map[string]any{
			"turno_id":         turno.ID,
			"admin":            adminCred(),
			"efectivo_contado": 1500,
		}), env.staff)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	var cierre struct {
		Estado     string `json:"estado"`
		Diferencia string `json:"diferencia"`
	}
	decodeJSON(t, cerrarResp, &cierre)
	assert.Equal(t, "cerrado", cierre.Estado)
	assert.Equal(t, "0", cierre.Diferencia)

	// 6. Registrar sobre turno cerrado → conflicto
	tardeResp := do(t, env.server, "POST", "/v1/caja/movimientos",
		jsonBody(t, map[string]any{
			"turno_id":    turno.ID,
			"tipo":        "venta",
			"metodo":      "efectivo",
			"monto":       100,
			"descripcion": "tarde",
			"atribucion":  map[string]string{"identidad": "F", "secreto": "f12"},
		}), env.staff)
	require.Equal(t, http.StatusConflict, tardeResp.StatusCode)
	tardeResp.Body.Close()

	// 7. Historial (rol admin) contiene el turno cerrado
	histResp := do(t, env.server, "GET", "/v1/historial", nil, env.admin)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, histResp, &hist)
	require.Len(t, hist.Data, 1)
	assert.Equal(t, turno.ID, hist.Data[0].ID)

	// El historial esta vedado para el rol staff
	staffHistResp := do(t, env.server, "GET", "/v1/historial", nil, env.staff)
	require.Equal(t, http.StatusForbidden, staffHistResp.StatusCode)
	staffHistResp.Body.Close()
}

func TestE2E_AuditoriasPersistidas(t *testing.T) {
	env := setupTestEnv(t)

	abrirResp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{
			"admin":    adminCred(),
			"fecha":    time.Now().Format("2006-01-02"),
			"periodo":  "tarde",
			"desglose": []map[string]any{{"etiqueta": "otros", "monto": 0}},
		}), env.staff)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)
	var turno struct {
		ID string `json:"id"`
	}
	decodeJSON(t, abrirResp, &turno)

	registrarMov := func(monto int, desc string) string {
		resp := do(t, env.server, "POST", "/v1/caja/movimientos",
			jsonBody(t, map[string]any{
				"turno_id":    turno.ID,
				"tipo":        "venta",
				"metodo":      "transferencia",
				"monto":       monto,
				"descripcion": desc,
				"atribucion":  map[string]string{"identidad": "F", "secreto": "f12"},
			}), env.staff)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var mov struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &mov)
		return mov.ID
	}

	editado := registrarMov(300, "Ficciones")
	anulado := registrarMov(150, "duplicada")

	editResp := do(t, env.server, "PUT", "/v1/caja/movimientos/"+editado,
		jsonBody(t, map[string]any{
			"credencial":  map[string]string{"identidad": "F", "secreto": "f12"},
			"motivo":      "precio corregido",
			"monto":       350,
			"descripcion": "Ficciones ed. bolsillo",
		}), env.staff)
	require.Equal(t, http.StatusOK, editResp.StatusCode)
	editResp.Body.Close()

	anularResp := do(t, env.server, "DELETE", "/v1/caja/movimientos/"+anulado,
		jsonBody(t, map[string]any{
			"credencial": map[string]string{"identidad": "F", "secreto": "f12"},
			"motivo":     "cargada dos veces",
		}), env.staff)
	require.Equal(t, http.StatusNoContent, anularResp.StatusCode)
	anularResp.Body.Close()

	cerrarResp := do(t, env.server, "POST", "/v1/caja/cerrar",
		jsonBody(t, map[string]any{
			"turno_id":         turno.ID,
			"admin":            adminCred(),
			"efectivo_contado": 0,
		}), env.staff)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	cerrarResp.Body.Close()

	// El detalle reconstruye libro, auditorias y totales desde Postgres.
	detalleResp := do(t, env.server, "GET", "/v1/historial/"+turno.ID, nil, env.admin)
	require.Equal(t, http.StatusOK, detalleResp.StatusCode)
	var detalle struct {
		Movimientos []struct {
			ID    string `json:"id"`
			Monto string `json:"monto"`
		} `json:"movimientos"`
		Ediciones []struct {
			MontoAnterior string `json:"monto_anterior"`
			Motivo        string `json:"motivo"`
		} `json:"auditoria_ediciones"`
		Bajas []struct {
			MontoAnterior string `json:"monto_anterior"`
		} `json:"auditoria_bajas"`
		Totales struct {
			SaldoTotal string `json:"saldo_total"`
		} `json:"totales"`
	}
	decodeJSON(t, detalleResp, &detalle)

	require.Len(t, detalle.Movimientos, 1)
	assert.Equal(t, editado, detalle.Movimientos[0].ID)
	assert.Equal(t, "350", detalle.Movimientos[0].Monto)
	require.Len(t, detalle.Ediciones, 1)
	assert.Equal(t, "300", detalle.Ediciones[0].MontoAnterior)
	assert.Equal(t, "precio corregido", detalle.Ediciones[0].Motivo)
	require.Len(t, detalle.Bajas, 1)
	assert.Equal(t, "150", detalle.Bajas[0].MontoAnterior)
	assert.Equal(t, "350", detalle.Totales.SaldoTotal)
}
