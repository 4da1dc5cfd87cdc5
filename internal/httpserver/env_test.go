package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/bootstrap"
	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/service"
)

type capturePublisher struct {
	events []events.ProductEvent
}

func (p *capturePublisher) Publish(_ context.Context, ev events.ProductEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	A      *AuthHTTP
	P      *CatalogHTTP
	R      *ReportHTTP
	Events *capturePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, bootstrap.Run(ctx, gdb))

	r := &repo.GormRepo{DB: gdb}
	pub := &capturePublisher{}

	env := &testEnv{
		T:      t,
		E:      New(logging.NewWithWriter(io.Discard, "error"), 0),
		DB:     gdb,
		A:      &AuthHTTP{Svc: &service.AuthService{Repo: r}},
		P:      &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: pub}},
		R:      &ReportHTTP{Svc: &service.ReportService{Repo: r}},
		Events: pub,
	}

	Register(env.E, &Deps{
		AuthHandler:    env.A,
		CatalogHandler: env.P,
		ReportHandler:  env.R,
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	return env
}

// doJSONRequest builds a context for calling a handler directly.
func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// serve runs a raw request through the full router and middleware chain.
func (env *testEnv) serve(method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

