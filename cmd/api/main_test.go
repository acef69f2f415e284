package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retailos/internal/config"
	"github.com/georgemunganga/retailos/internal/database/dbtest"
	"github.com/georgemunganga/retailos/internal/modules/schema"
)

func TestSchemaCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetArgs([]string{"schema", "--driver", "sqlite", "--dsn", dsn})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "schema ready (sqlite)")
}

func TestRouterWiring(t *testing.T) {
	db, dialect := dbtest.Open(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour, CheckoutRetries: 1}
	router := newRouter(db, dialect, schema.NewManager(db, dialect), cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stores/register",
		strings.NewReader(`{"login":"wired","password":"s3cret","storeName":"Wired Store"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	for _, path := range []string{"/api/v1/inventory/items", "/api/v1/reports/daily", "/api/v1/dashboard", "/api/shop"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
