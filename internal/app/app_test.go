package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cmdsync/modules/ping"
	"github.com/vk/cmdsync/modules/region_server"
)

type pushRecorder struct {
	mu          sync.Mutex
	identityErr bool
	bodies      []string
}

func (p *pushRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications/@me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if p.identityErr {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"401: Unauthorized"}`)
			return
		}
		io.WriteString(w, `{"id":"app-1","name":"lobby-bot"}`)
	})
	mux.HandleFunc("PUT /applications/app-1/guilds/guild-1/commands", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		p.mu.Lock()
		p.bodies = append(p.bodies, string(body))
		p.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(apiURL string) *Config {
	return &Config{
		Token:          "secret",
		GuildID:        "guild-1",
		APIURL:         apiURL,
		RequestTimeout: time.Second,
		LogFormat:      "text",
	}
}

func TestNewApp_RegistersModulesThenManifests(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "commands", "hello.cmd.hcl")
	writeFile(t, manifest, `command "hello" { description = "Say hello" }`)

	cfg := testConfig("http://unused")
	cfg.CommandsPath = filepath.Join(dir, "commands")
	testApp, _ := SetupAppTest(t, cfg)

	assert.Equal(t, []string{ping.Ref, region_server.Ref, manifest}, testApp.Registry().Refs())
}

func TestNewApp_ConfigFileReplacesRegionTable(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cmdsync.hcl")
	writeFile(t, cfgPath, "region \"OCE\" {\n  address = \"10.0.0.5\"\n  port = 7000\n}\n")

	cfg := testConfig("http://unused")
	cfg.ConfigPath = cfgPath
	testApp, _ := SetupAppTest(t, cfg)

	assert.Equal(t, []string{"OCE"}, testApp.Regions().Regions())
}

func TestNewApp_PanicsOnInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cmdsync.hcl")
	writeFile(t, cfgPath, "region \"EU\" {")

	cfg := testConfig("http://unused")
	cfg.ConfigPath = cfgPath
	require.Panics(t, func() { SetupAppTest(t, cfg) })
}

func TestRun_PushesFullCatalog(t *testing.T) {
	rec := &pushRecorder{}
	srv := rec.server(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hello.cmd.hcl"), `command "hello" { description = "Say hello" }`)
	writeFile(t, filepath.Join(dir, "broken.cmd.hcl"), `command "broken" {`)

	cfg := testConfig(srv.URL)
	cfg.CommandsPath = dir
	testApp, logs := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))

	require.Len(t, rec.bodies, 1)
	var pushed []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(rec.bodies[0]), &pushed))
	var names []string
	for _, p := range pushed {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ping", "region", "hello"}, names)
	assert.Contains(t, logs.String(), "Command unit skipped.")
	assert.NotContains(t, logs.String(), "secret")
}

func TestRun_IdentityFailureStopsBeforePush(t *testing.T) {
	rec := &pushRecorder{identityErr: true}
	srv := rec.server(t)

	testApp, _ := SetupAppTest(t, testConfig(srv.URL))
	err := testApp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve application identity")
	assert.Empty(t, rec.bodies)
}

func TestRun_DryRunSkipsNetwork(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.DryRun = true
	testApp, logs := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, logs.String(), "Dry run")
}

func TestRoutes(t *testing.T) {
	testApp, _ := SetupAppTest(t, testConfig("http://unused"))
	h := testApp.routes()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK\n", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/regions/EU", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"region":"EU","address":"127.0.0.1","port":7777}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/regions/ASIA", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `unknown region \"ASIA\"`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/regions", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"region":"EU","address":"127.0.0.1","port":7777},
		{"region":"NAE","address":"157.173.203.4","port":7777}
	]`, rr.Body.String())
}

func TestNewLogger_RedactsCredentials(t *testing.T) {
	var buf SafeBuffer
	logger := newLogger("info", "json", &buf)
	logger.Info("configured", "token", "secret", "guild", "guild-1")

	assert.NotContains(t, buf.String(), "secret")
	assert.Contains(t, buf.String(), `"token":"REDACTED"`)
	assert.Contains(t, buf.String(), `"guild":"guild-1"`)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{RequestTimeout: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
	assert.Contains(t, err.Error(), "guild id is required")

	cfg, err := NewConfig(Config{DryRun: true, RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)

	_, err = NewConfig(Config{DryRun: true, RequestTimeout: time.Second, WorkerCount: -1})
	require.Error(t, err)
	_, err = NewConfig(Config{DryRun: true})
	require.Error(t, err)
}
