// pre_processor.go implements the Oxy GLSL shader pre-processor. It scans shader source for
// //@oxy:include lines and replaces each with a registered GLSL snippet, so every shader declares
// the engine's camera, model and material uniforms the same way.
package shader

import (
	_ "embed"
	"fmt"
	"strings"
)

// annotationPrefix marks an Oxy directive inside a GLSL line comment.
const annotationPrefix = "@oxy:"

//go:embed assets/camera.glsl
var cameraSource string

//go:embed assets/material.glsl
var materialSource string

//go:embed assets/model.glsl
var modelSource string

// PreProcessor expands //@oxy:include directives in GLSL source.
type PreProcessor interface {
	// Process replaces every //@oxy:include <name> line with the registered snippet.
	//
	// Parameters:
	//   - source: raw GLSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed or unknown directive
	Process(source string) (string, error)

	// Register adds or replaces a named snippet.
	//
	// Parameters:
	//   - name: the include key
	//   - source: GLSL text injected at the include site
	Register(name, source string)

	// Includes returns the include keys used by the most recent Process call, in source order.
	Includes() []string
}

type preProcessor struct {
	snippets map[string]string
	includes []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine snippets "camera", "model" and "material" registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		snippets: map[string]string{
			"camera":   cameraSource,
			"model":    modelSource,
			"material": materialSource,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.snippets[name] = source
}

func (p *preProcessor) Includes() []string {
	return p.includes
}

func (p *preProcessor) Process(source string) (string, error) {
	p.includes = p.includes[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		name, ok, err := parseInclude(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		if !ok {
			out = append(out, line)
			continue
		}
		snippet, found := p.snippets[name]
		if !found {
			return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, name)
		}
		out = append(out, strings.TrimRight(snippet, "\n"))
		p.includes = append(p.includes, name)
	}
	return strings.Join(out, "\n"), nil
}

// parseInclude recognizes "//@oxy:include <name>" with optional surrounding whitespace.
func parseInclude(line string) (string, bool, error) {
	trimmed := strings.TrimSpace(line)
	body, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return "", false, nil
	}
	body, ok = strings.CutPrefix(strings.TrimSpace(body), annotationPrefix)
	if !ok {
		return "", false, nil
	}
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[0] != "include" {
		return "", false, fmt.Errorf("unknown annotation %q", body)
	}
	if len(fields) != 2 {
		return "", false, fmt.Errorf("@oxy:include takes exactly one argument, got %d", len(fields)-1)
	}
	return fields[1], true, nil
}
