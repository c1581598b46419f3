package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/typecollect/internal/config"
	"github.com/specialistvlad/typecollect/internal/hcl_adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{HealthcheckPort: 70000, Watch: true})
	require.Error(t, err)

	_, err = NewConfig(Config{HealthcheckPort: 8080})
	require.Error(t, err, "health check needs watch mode")

	cfg, err := NewConfig(Config{HealthcheckPort: 8080, Watch: true, Inputs: []string{"a.hcl"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.hcl"}, cfg.Inputs)
}

func TestMerge(t *testing.T) {
	project := &config.Model{
		Path: "/work/typecollect.hcl",
		Project: config.Project{
			Inputs:          []string{"/work/schemas"},
			NamespacePrefix: "com.acme",
		},
		Output:  config.Output{Path: "/work/out.yaml", Format: "yaml"},
		Metrics: config.Metrics{File: "/work/run.prom"},
	}

	cases := map[string]struct {
		cfg  Config
		want settings
	}{
		"project file only": {
			cfg: Config{},
			want: settings{
				Inputs:          []string{"/work/schemas"},
				Root:            "/work",
				OutputPath:      "/work/out.yaml",
				Format:          "yaml",
				NamespacePrefix: "com.acme",
				MetricsFile:     "/work/run.prom",
			},
		},
		"flags win": {
			cfg: Config{Inputs: []string{"x.hcl"}, Root: "src", Format: "json", OutputPath: "-", Compact: true},
			want: settings{
				Inputs:          []string{"x.hcl"},
				Root:            "src",
				OutputPath:      "-",
				Format:          "json",
				Compact:         true,
				NamespacePrefix: "com.acme",
				MetricsFile:     "/work/run.prom",
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := merge(&tc.cfg, project)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("defaults", func(t *testing.T) {
		got := merge(&Config{Inputs: []string{"a.hcl"}}, &config.Model{})
		assert.Equal(t, settings{Inputs: []string{"a.hcl"}, Root: ".", Format: "json"}, got)
	})
}

func TestNewApp_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]struct {
		cfg     Config
		message string
	}{
		"missing explicit project file": {
			cfg:     Config{ConfigPath: filepath.Join(dir, "nope.hcl"), Inputs: []string{"a.hcl"}},
			message: "failed to load configuration",
		},
		"no inputs": {
			cfg:     Config{ConfigPath: ""},
			message: "no inputs",
		},
		"unknown format": {
			cfg:     Config{Inputs: []string{"a.hcl"}, Format: "xml"},
			message: `unknown output format "xml"`,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &tc.cfg, hcl_adapter.NewLoader())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestRun_WritesToStdout(t *testing.T) {
	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"models/common.hcl": `
type "Money" { amount = long }
export = [Money]
`,
		"models/order.hcl": `
import "./common.hcl" {
  Money = Money
}
type "Order" { total = Money }
export = [Order]
`,
	})
	out := &bytes.Buffer{}
	cfg := &Config{
		Inputs:          []string{filepath.Join(dir, "models/order.hcl")},
		Root:            dir,
		NamespacePrefix: "com.acme",
		Compact:         true,
		LogLevel:        "debug",
	}
	logs := &bytes.Buffer{}
	a, err := NewApp(out, logs, cfg, nil)
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	// Records are published when defined, before their fields resolve.
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type": "record", "name": "Order", "namespace": "com.acme.models.order", "fields": [{"name": "total", "type": "com.acme.models.common.Money"}]},
		{"type": "record", "name": "Money", "namespace": "com.acme.models.common", "fields": [{"name": "amount", "type": "long"}]}
	]`, out.String())
	assert.Contains(t, logs.String(), "run_id=")
	assert.Contains(t, logs.String(), "Schemas collected.")
}

func TestRun_WritesFilesFromProject(t *testing.T) {
	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"typecollect.hcl": `
project {
  inputs = ["schemas"]
}
output {
  path   = "build/schemas.yaml"
  format = "yaml"
}
metrics {
  file = "build/run.prom"
}
`,
		"schemas/color.hcl": `
enum "Color" { symbols = ["red", "green"] }
export = [Color]
`,
	})
	cfg := &Config{ConfigPath: filepath.Join(dir, "typecollect.hcl")}
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl_adapter.NewLoader())
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))

	// --- Assert ---
	data, err := os.ReadFile(filepath.Join(dir, "build/schemas.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Color")
	assert.Contains(t, string(data), "namespace: schemas.color")

	prom, err := os.ReadFile(filepath.Join(dir, "build/run.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "typecollect_schemas_emitted_total 1")
}

func TestRun_FailureKeepsOutput(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.hcl":   `type "A" { b = Missing }` + "\nexport = [A]\n",
		"out.json": "previous",
	})
	cfg := &Config{Inputs: []string{filepath.Join(dir, "a.hcl")}, Root: dir, OutputPath: filepath.Join(dir, "out.json")}
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	require.NoError(t, err)

	err = a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestHealthHandler(t *testing.T) {
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{Inputs: []string{"a.hcl"}}, nil)
	require.NoError(t, err)
	mux := a.healthcheckMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	a.setLastErr(assert.AnError)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), assert.AnError.Error())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "typecollect_")
}

func TestRun_WatchRebuildsOnChange(t *testing.T) {
	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"a.hcl": `type "A" { x = long }` + "\nexport = [A]\n",
	})
	outPath := filepath.Join(dir, "out", "schemas.json")
	cfg := &Config{Inputs: []string{dir}, Root: dir, OutputPath: outPath, Watch: true}
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	readOutput := func() string {
		data, _ := os.ReadFile(outPath)
		return string(data)
	}
	require.Eventually(t, func() bool { return strings.Contains(readOutput(), `"A"`) }, 5*time.Second, 20*time.Millisecond)

	// --- Act ---
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`type "B" { y = string }`+"\nexport = [B]\n"), 0o644))

	// --- Assert ---
	require.Eventually(t, func() bool { return strings.Contains(readOutput(), `"B"`) }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop")
	}
}
