package core

import (
	"context"
	"testing"

	"github.com/oakwood-commons/clipbar/internal/formatter"
	"github.com/oakwood-commons/clipbar/internal/toolbar"
)

type fakeEvaluator struct {
	validated []string
	visible   map[string]bool
}

func (f *fakeEvaluator) Validate(expr string) error {
	f.validated = append(f.validated, expr)
	return nil
}

func (f *fakeEvaluator) Visible(expr string, _, _ map[string]any) (bool, error) {
	if expr == "" {
		return true, nil
	}
	return f.visible[expr], nil
}

type fakeFormatter struct {
	input toolbar.Arrangement
	out   formatter.Output
}

func (f *fakeFormatter) Format(arr toolbar.Arrangement, out formatter.Output, _ formatter.Options) (string, error) {
	f.input, f.out = arr, out
	return "formatted", nil
}

func TestEngineUsesInjectedEvaluator(t *testing.T) {
	eval := &fakeEvaluator{visible: map[string]bool{"ctx.debug": true}}
	engine, err := New(WithEvaluator(eval))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	layout := prepareSample(t, engine, nil)
	if len(eval.validated) != 1 || eval.validated[0] != "ctx.debug" {
		t.Fatalf("validated = %v, want [ctx.debug]", eval.validated)
	}

	// The fake ignores the context, so debug is shown even though it is false.
	arr, err := layout.Arrange(context.Background(), 80)
	if err != nil {
		t.Fatalf("Arrange error: %v", err)
	}
	if len(arr.Skipped) != 0 {
		t.Fatalf("skipped = %+v, want none", arr.Skipped)
	}
}

func TestEngineUsesInjectedFormatter(t *testing.T) {
	fmtMock := &fakeFormatter{}
	engine, err := New(WithFormatter(fmtMock))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	arr := toolbar.Arrangement{Toolbar: "x", Extent: 3}
	out, err := engine.Format(arr, formatter.OutputJSON, formatter.Options{})
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out != "formatted" {
		t.Fatalf("Format = %q, want %q", out, "formatted")
	}
	if fmtMock.input.Toolbar != "x" || fmtMock.out != formatter.OutputJSON {
		t.Fatalf("formatter saw %+v / %q", fmtMock.input, fmtMock.out)
	}
}

func TestLayoutWithoutBox(t *testing.T) {
	if _, err := (Layout{}).Arrange(context.Background(), 10); err == nil {
		t.Fatalf("expected an error for a layout without a box")
	}
}
