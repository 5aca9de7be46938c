package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/security"
	"github.com/codewithboateng/namelint/internal/storage"
)

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func newTestServer(t *testing.T) (*client, *storage.DB) {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())

	for _, u := range []struct{ name, role string }{{"admin", security.RoleAdmin}, {"viewer", security.RoleViewer}} {
		h, err := security.HashPassword("password-" + u.name)
		require.NoError(t, err)
		_, err = db.CreateUser(u.name, h, u.role)
		require.NoError(t, err)
	}

	srv := &Server{DB: db, UserStore: db, AllowedOrigins: []string{"*"}, SessionDuration: time.Hour}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}, db
}

func TestRunsAndFindings(t *testing.T) {
	c, db := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/v1/runs/latest", "")
	assert.Equal(t, http.StatusNotFound, code, body)

	require.NoError(t, db.SaveRun(&ir.Run{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
		Findings: []ir.Finding{{
			ID: "F1", RuleID: "ForbiddenClassName", Severity: ir.SeverityStyle, Debt: debt.FiveMins,
			Entity:  ir.Entity{Name: "UserManager", Location: ir.Location{File: "a.go", Line: 3, Column: 6}},
			Message: "Class name UserManager is forbidden as it contains: Manager",
		}},
	}))

	code, body = c.do(http.MethodGet, "/api/v1/runs", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	code, body = c.do(http.MethodGet, "/api/v1/runs/latest", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "run-1", body["id"])

	code, body = c.do(http.MethodGet, "/api/v1/runs/run-1/findings?rule=ForbiddenClassName", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)
	assert.Equal(t, "5min", body["debt"])

	code, _ = c.do(http.MethodGet, "/api/v1/runs/nope", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = c.do(http.MethodGet, "/api/v1/rules", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotZero(t, body["count"])
}

func TestAuthAndWaivers(t *testing.T) {
	c, _ := newTestServer(t)

	code, _ := c.do(http.MethodGet, "/api/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := c.do(http.MethodPost, "/api/v1/auth/login", `{"username":"viewer","password":"password-viewer"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, security.RoleViewer, body["role"])

	exp := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	waiver := `{"rule_id":"ForbiddenClassName","decl":"UserManager","reason":"legacy","expires_at":"` + exp + `"}`
	code, _ = c.do(http.MethodPost, "/api/v1/waivers", waiver)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"password-admin"}`)
	require.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodPost, "/api/v1/waivers", waiver)
	require.Equal(t, http.StatusCreated, code, body)

	code, body = c.do(http.MethodGet, "/api/v1/waivers?active=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	code, _ = c.do(http.MethodPost, "/api/v1/waivers/1/revoke", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodPost, "/api/v1/waivers/1/revoke", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodPost, "/api/v1/waivers", `{"rule_id":"X"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
