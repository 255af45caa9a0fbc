package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsutils/tsutils/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag variables persist across Execute calls; reset to defaults so
	// each case starts clean.
	// 标志变量在多次 Execute 之间保留；重置为默认值使每个用例从干净状态开始。
	rootDir = "."
	configPath = ""
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestCheckValidConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "logconf.yaml")
	doc := `
version: 1
formatters:
  file:
    format: "[%(asctime)s]  %(levelname)s %(message)s"
handlers:
  verbose:
    class: rotating_file
    level: DEBUG
    formatter: file
    filename: "{ROOT_DIR}/output/logs/verbose.log"
    maxBytes: 5242880
    backupCount: 1
loggers:
  tsutils:
    level: DEBUG
    propagate: true
    handlers: [verbose]
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	out, err := execute(t, "--root-dir", root, "check", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 1 formatter(s), 1 handler(s), 1 logger(s)")
}

func TestCheckRejectsBrokenConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "broken.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"version": 7}`), 0o644))

	_, err := execute(t, "--root-dir", root, "check", cfgPath)
	assert.Error(t, err)
}

func TestLogsPrintsHandlerFile(t *testing.T) {
	root := t.TempDir()
	logDir := filepath.Join(root, "output", "logs")
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(logDir, "concise.log"),
		[]byte("[2026-08-24 10:00:00,000]  INFO ready\n"), 0o644))

	out, err := execute(t, "--root-dir", root, "logs", "concise")
	require.NoError(t, err)
	assert.Contains(t, out, "INFO ready")
}

func TestLogsUnknownHandler(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "--root-dir", root, "logs", "audit")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--root-dir", t.TempDir(),
		"-c", filepath.Join(t.TempDir(), "absent.yaml"), "version")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "--root-dir", t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tsutils")
}
