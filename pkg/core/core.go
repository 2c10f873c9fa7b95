// Package core is the library entry point of clipbar: it loads toolbar
// definitions, checks their conditions and runs layout passes.
package core

import (
	"context"
	"fmt"
	"maps"

	celcond "github.com/oakwood-commons/clipbar/internal/cel"
	"github.com/oakwood-commons/clipbar/internal/formatter"
	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/pkg/loader"
)

// Evaluator checks and evaluates entry conditions.
type Evaluator interface {
	Validate(expr string) error
	Visible(expr string, ctx, entry map[string]any) (bool, error)
}

// Formatter renders an arrangement in one of the output formats.
type Formatter interface {
	Format(arr toolbar.Arrangement, out formatter.Output, opts formatter.Options) (string, error)
}

// Engine provides a minimal shared API for loading, laying out, and rendering
// toolbars.
type Engine struct {
	Evaluator Evaluator
	Formatter Formatter
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom condition evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// WithFormatter sets a custom formatter.
func WithFormatter(f Formatter) Option {
	return func(c *Engine) {
		c.Formatter = f
	}
}

// New creates an Engine with defaults: CEL conditions and the built-in
// formatter.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		eval, err := celcond.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = eval
	}
	engine.ensureFormatter()
	return engine, nil
}

// LoadFile reads every definition in path.
func LoadFile(path string) ([]loader.Definition, error) {
	return loader.LoadFile(path)
}

// LoadBytes decodes every definition in data, detecting the format.
func LoadBytes(data []byte) ([]loader.Definition, error) {
	return loader.LoadAll(data, loader.FormatAuto)
}

// Layout is a validated toolbar together with the box it is laid out in.
type Layout struct {
	Toolbar *toolbar.Toolbar
	Box     *toolbar.Box
}

// Arrange runs one layout pass at extent.
func (l Layout) Arrange(ctx context.Context, extent int) (toolbar.Arrangement, error) {
	if l.Box == nil {
		return toolbar.Arrangement{}, fmt.Errorf("layout has no box")
	}
	return l.Box.Arrange(ctx, l.Toolbar, extent)
}

// Prepare validates def and builds its toolbar and box. values are merged
// over the definition's context before conditions see them.
func (e *Engine) Prepare(def *loader.Definition, values map[string]any) (Layout, error) {
	if def == nil {
		return Layout{}, loader.ErrEmptyInput
	}
	if e == nil || e.Evaluator == nil {
		return Layout{}, fmt.Errorf("evaluator is not configured")
	}
	if err := def.Validate(e.Evaluator); err != nil {
		return Layout{}, fmt.Errorf("toolbar %q: %w", def.Name, err)
	}
	box := def.Box(e.Evaluator)
	box.Context = MergeContext(def.Context, values)
	return Layout{Toolbar: def.Toolbar(), Box: box}, nil
}

// Format renders arr through the engine's formatter.
func (e *Engine) Format(arr toolbar.Arrangement, out formatter.Output, opts formatter.Options) (string, error) {
	e.ensureFormatter()
	if e == nil || e.Formatter == nil {
		return "", fmt.Errorf("formatter is not configured")
	}
	return e.Formatter.Format(arr, out, opts)
}

// MergeContext overlays over onto a copy of base, merging nested maps. base
// is never modified.
func MergeContext(base, over map[string]any) map[string]any {
	if len(over) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(over))
	maps.Copy(out, base)
	for k, v := range over {
		if om, ok := v.(map[string]any); ok {
			if bm, ok := out[k].(map[string]any); ok {
				out[k] = MergeContext(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
}

type defaultFormatter struct{}

func (defaultFormatter) Format(arr toolbar.Arrangement, out formatter.Output, opts formatter.Options) (string, error) {
	return formatter.Format(arr, out, opts)
}

func (e *Engine) ensureFormatter() {
	if e == nil {
		return
	}
	if e.Formatter == nil {
		e.Formatter = defaultFormatter{}
	}
}
