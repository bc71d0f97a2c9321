package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

//go:embed assets/layouts/*.ini
var layoutTemplates embed.FS

// Built-in layout names.
const (
	LayoutDefault      = "default"
	LayoutViewportOnly = "viewport_only"
)

const (
	layoutExt       = ".ini"
	customLayoutDir = "custom"
	activeLayout    = "active.ini"
)

var (
	// ErrUnknownLayout is returned by Apply for a name that is neither built in nor saved.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrInvalidLayoutName is returned for empty names or names containing path separators.
	ErrInvalidLayoutName = errors.New("invalid layout name")
)

// LayoutManager manages docking layout snapshots. The active layout is a single .ini file read by
// the UI at startup, so applying a different layout only takes effect after a restart.
type LayoutManager interface {
	// ActivePath returns the location of the active layout file.
	ActivePath() string

	// Ensure writes the default layout to the active file if it does not exist yet.
	//
	// Returns:
	//   - error: an error if the file cannot be written
	Ensure() error

	// Apply copies the named layout over the active layout file. Built-in names take precedence
	// over custom layouts of the same name.
	//
	// Parameters:
	//   - name: a built-in name or the name of a saved custom layout
	//
	// Returns:
	//   - bool: true if the active layout changed and a restart is required
	//   - error: ErrUnknownLayout, ErrInvalidLayoutName or an I/O error
	Apply(name string) (bool, error)

	// SaveCustom stores the active layout as custom/<name>.ini, replacing any previous snapshot.
	//
	// Parameters:
	//   - name: the custom layout name
	//
	// Returns:
	//   - error: ErrInvalidLayoutName or an I/O error
	SaveCustom(name string) error

	// Custom lists saved custom layout names in sorted order.
	//
	// Returns:
	//   - []string: the names, without extension
	//   - error: an error if the custom directory exists but cannot be read
	Custom() ([]string, error)

	// BuiltIn lists the built-in layout names in sorted order.
	BuiltIn() []string
}

type layoutManager struct {
	mu     *sync.Mutex
	dir    string
	logger *zap.Logger
}

var _ LayoutManager = &layoutManager{}

// LayoutManagerOption is a functional option for configuring a LayoutManager.
type LayoutManagerOption func(*layoutManager)

// WithLayoutLogger sets the layout manager's logger.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - LayoutManagerOption: option function to apply
func WithLayoutLogger(logger *zap.Logger) LayoutManagerOption {
	return func(m *layoutManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewLayoutManager creates a layout manager rooted at dir. The active layout lives at
// dir/active.ini and custom snapshots under dir/custom.
//
// Parameters:
//   - dir: the layout directory
//   - options: functional options
//
// Returns:
//   - LayoutManager: the layout manager
func NewLayoutManager(dir string, options ...LayoutManagerOption) LayoutManager {
	m := &layoutManager{
		mu:     &sync.Mutex{},
		dir:    dir,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *layoutManager) ActivePath() string {
	return filepath.Join(m.dir, activeLayout)
}

func (m *layoutManager) Ensure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := os.Stat(m.ActivePath()); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	data, err := layoutTemplates.ReadFile("assets/layouts/" + LayoutDefault + layoutExt)
	if err != nil {
		return err
	}
	return writeFile(m.ActivePath(), data)
}

func (m *layoutManager) Apply(name string) (bool, error) {
	if err := validateLayoutName(name); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.template(name)
	if err != nil {
		return false, err
	}
	current, err := os.ReadFile(m.ActivePath())
	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}
	if err := writeFile(m.ActivePath(), data); err != nil {
		return false, err
	}
	m.logger.Info("layout applied, restart required", zap.String("layout", name))
	return true, nil
}

func (m *layoutManager) SaveCustom(name string) error {
	if err := validateLayoutName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.ActivePath())
	if err != nil {
		return fmt.Errorf("failed to read active layout: %w", err)
	}
	if err := writeFile(m.customPath(name), data); err != nil {
		return err
	}
	m.logger.Info("custom layout saved", zap.String("layout", name))
	return nil
}

func (m *layoutManager) Custom() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := os.ReadDir(filepath.Join(m.dir, customLayoutDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != layoutExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), layoutExt))
	}
	slices.Sort(names)
	return names, nil
}

func (m *layoutManager) BuiltIn() []string {
	return []string{LayoutDefault, LayoutViewportOnly}
}

// template loads a built-in or custom layout. Caller must hold the mutex.
func (m *layoutManager) template(name string) ([]byte, error) {
	if slices.Contains(m.BuiltIn(), name) {
		return layoutTemplates.ReadFile("assets/layouts/" + name + layoutExt)
	}
	data, err := os.ReadFile(m.customPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
	return data, err
}

func (m *layoutManager) customPath(name string) string {
	return filepath.Join(m.dir, customLayoutDir, name+layoutExt)
}

func validateLayoutName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidLayoutName, name)
	}
	return nil
}
