package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// ErrUnsupportedUniform is returned by Set when the value's Go type has no uniform upload mapping.
var ErrUnsupportedUniform = errors.New("shader: unsupported uniform value type")

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Name  string
	Stage backend.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %q: %s stage failed to compile: %s", e.Name, e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Name string
	Log  string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader %q: program failed to link: %s", e.Name, e.Log)
}

// SourceError reports a shader source file that could not be read or pre-processed.
type SourceError struct {
	Name string
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("shader %q: failed to load source %q: %v", e.Name, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
