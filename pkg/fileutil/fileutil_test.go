package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tserrors "github.com/tsutils/tsutils/pkg/errors"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{"name": "tsutils", "count": 3}`)

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := LoadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "tsutils" || out.Count != 3 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "cfg.yaml", "name: tsutils\ncount: 3\n")

	out := make(map[string]any)
	if err := LoadYAML(path, &out); err != nil {
		t.Fatal(err)
	}
	if out["name"] != "tsutils" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestLoadMapByExtension(t *testing.T) {
	jsonPath := writeTemp(t, "a.json", `{"k": "v"}`)
	if m, err := LoadMap(jsonPath); err != nil || m["k"] != "v" {
		t.Errorf("json map: %v %v", m, err)
	}

	yamlPath := writeTemp(t, "a.yml", "k: v\n")
	if m, err := LoadMap(yamlPath); err != nil || m["k"] != "v" {
		t.Errorf("yaml map: %v %v", m, err)
	}

	txtPath := writeTemp(t, "a.txt", "k=v")
	if _, err := LoadMap(txtPath); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "data.csv", "a,b,c\nd,e,f\n")

	rows, err := LoadCSV(path, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][2] != "f" {
		t.Errorf("unexpected rows: %v", rows)
	}

	flat, err := LoadCSV(path, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if flat[0][0] != "a b c" {
		t.Errorf("unexpected flat row: %v", flat[0])
	}
}

func TestReadLinesSkipsBlank(t *testing.T) {
	path := writeTemp(t, "lines.txt", "one\n\n  two  \n\n")

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, tserrors.ErrFileNotFound) {
		t.Errorf("want ErrFileNotFound, got %v", err)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := AtomicWriteFile(path, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("unexpected content: %q", data)
	}

	// Overwrite must replace, not append / 覆盖必须替换而非追加
	if err := AtomicWriteFile(path, []byte("v2"), 0o600); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("unexpected content after rewrite: %q", data)
	}
}
