package fileutil

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsutils/tsutils/pkg/errors"
)

// LoadJSON decodes a JSON file into out.
// LoadJSON 将 JSON 文件解码到 out。
func LoadJSON(path string, out any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// LoadYAML decodes a YAML file into out.
// LoadYAML 将 YAML 文件解码到 out。
func LoadYAML(path string, out any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// LoadMap decodes a JSON or YAML mapping file by extension.
// LoadMap 根据扩展名解码 JSON 或 YAML 映射文件。
func LoadMap(path string) (map[string]any, error) {
	out := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := LoadJSON(path, &out); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := LoadYAML(path, &out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported mapping file: %s", path)
	}
	return out, nil
}

// LoadCSV reads a delimited file into rows. With flat true each row is
// joined into a single space-separated value.
// LoadCSV 将分隔符文件读取为多行。flat 为 true 时每行合并为一个以空格
// 分隔的值。
func LoadCSV(path string, flat bool, delimiter rune) ([][]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(string(data)))
	if delimiter != 0 {
		r.Comma = delimiter
	}
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if !flat {
		return rows, nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = []string{strings.Join(row, " ")}
	}
	return out, nil
}

// ReadLines reads all non-empty trimmed lines from a file.
// ReadLines 读取文件中所有非空的、去除首尾空白的行。
func ReadLines(path string) ([]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

// AtomicWriteFile writes data to a temporary file and renames it over the
// target so readers never observe a partial write.
// AtomicWriteFile 将数据写入临时文件后重命名为目标文件，使读取方不会看到
// 不完整的写入。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // Clean up if something fails

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// ReadFile reads a whole file with the shared path sanitizing and
// not-found error taxonomy.
// ReadFile 读取整个文件，使用统一的路径净化与未找到错误分类。
func ReadFile(path string) ([]byte, error) {
	return readFile(path)
}

func readFile(path string) ([]byte, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	if _, err := os.Stat(safePath); os.IsNotExist(err) {
		return nil, errors.NewFileError(path)
	}
	return os.ReadFile(safePath) // #nosec G304 -- path is sanitized with filepath.Clean
}
