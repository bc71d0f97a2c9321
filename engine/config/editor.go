package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

//go:embed assets/editor.json
var editorTemplate []byte

// EditorWindow holds the editor's window preferences.
type EditorWindow struct {
	WindowMode common.WindowMode `json:"windowMode"`
}

// EditorUI holds the editor's interface preferences.
type EditorUI struct {
	FontSize float32 `json:"fontSize"`
}

// EditorConfig is the contents of editor.json.
type EditorConfig struct {
	Window EditorWindow `json:"window"`
	UI     EditorUI     `json:"ui"`
}

// DefaultEditor returns the editor preferences used for keys missing from editor.json.
func DefaultEditor() *EditorConfig {
	return &EditorConfig{
		Window: EditorWindow{WindowMode: common.WindowModeWindowed},
		UI:     EditorUI{FontSize: 16},
	}
}

// LoadEditor reads editor.json at path. On first run the file does not exist yet and the packaged
// template is written there before it is read. Unknown keys are ignored and missing keys keep
// their defaults.
//
// Parameters:
//   - path: the editor.json location
//
// Returns:
//   - *EditorConfig: the editor preferences
//   - error: an error if the template cannot be written or the file cannot be parsed
func LoadEditor(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeFile(path, editorTemplate); err != nil {
			return nil, fmt.Errorf("failed to create %s from template: %w", path, err)
		}
		data = editorTemplate
	} else if err != nil {
		return nil, err
	}
	return ParseEditor(data)
}

// ParseEditor decodes editor.json contents on top of DefaultEditor.
func ParseEditor(data []byte) (*EditorConfig, error) {
	c := DefaultEditor()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}
	return c, nil
}

// Save writes the preferences to path as indented JSON.
//
// Parameters:
//   - path: the editor.json location
//
// Returns:
//   - error: an error if the file cannot be written
func (c *EditorConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
