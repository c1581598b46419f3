// Package testutil runs the application end to end against fixture files
// written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/typecollect/internal/app"
	"github.com/specialistvlad/typecollect/internal/config"
	"github.com/specialistvlad/typecollect/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Schemas decodes the JSON output into generic values.
func (r *HarnessResult) Schemas(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.Output), &out), "output is not a JSON array:\n%s", r.Output)
	return out
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files below a temporary directory and
// runs the app over them. Relative paths in cfg are taken relative to that
// directory, which is also the default root. A typecollect.hcl among files
// is used as the project file.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	// 2. Write all fixture files, creating subdirectories as needed.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 3. Anchor the configuration in the temporary directory.
	abs := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(tmpDir, p)
	}
	inputs := make([]string, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		inputs[i] = abs(in)
	}
	cfg.Inputs = inputs
	cfg.OutputPath = abs(cfg.OutputPath)
	cfg.MetricsFile = abs(cfg.MetricsFile)
	if cfg.Root != "" {
		cfg.Root = abs(cfg.Root)
	}
	var loader config.Loader
	if _, ok := files[config.DefaultFile]; ok || cfg.ConfigPath != "" {
		cfg.ConfigPath = abs(cfg.ConfigPath)
		if cfg.ConfigPath == "" {
			cfg.ConfigPath = filepath.Join(tmpDir, config.DefaultFile)
		}
		loader = hcl_adapter.NewLoader()
	} else if cfg.Root == "" {
		cfg.Root = tmpDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}

	testApp, err := app.NewApp(out, logBuffer, &cfg, loader)
	if err != nil {
		return &HarnessResult{Dir: tmpDir, LogOutput: logBuffer.String(), Err: fmt.Errorf("application startup failed | %w", err)}
	}
	runErr := testApp.Run(ctx)

	if os.Getenv("TC_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Dir:       tmpDir,
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
