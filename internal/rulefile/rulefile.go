// Package rulefile writes YAML rule documents to disk.
package rulefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// TimeFormat is the layout of generated_at fields.
const TimeFormat = time.RFC3339

// Path returns the rule file location of a category.
func Path(dir, category string) string {
	return filepath.Join(dir, category+".yaml")
}

// Title renders a category name for file headers, "bank" -> "Bank".
func Title(category string) string {
	return cases.Title(language.Und).String(category)
}

// Encode renders doc as YAML with header as the leading comment.
func Encode(header string, doc interface{}) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(doc); err != nil {
		return nil, err
	}
	node.HeadComment = header

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write replaces path with data atomically: the content goes to a temp file
// in the same directory which is then renamed over the target.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// EncodeAndWrite is Encode followed by Write.
func EncodeAndWrite(path, header string, doc interface{}) error {
	data, err := Encode(header, doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return Write(path, data)
}
