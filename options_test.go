package red

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.teardown != nil {
		t.Error("default teardown should be nil")
	}
	if o.errorChecks {
		t.Error("error checks should be off by default")
	}
}

func TestWithTeardown(t *testing.T) {
	called := false
	o := defaultOptions()
	WithTeardown(func() { called = true })(&o)

	if o.teardown == nil {
		t.Fatal("WithTeardown did not set teardown")
	}
	o.teardown()
	if !called {
		t.Error("teardown is not the registered function")
	}
}

func TestWithErrorChecks(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			o.errorChecks = !tt.enabled
			WithErrorChecks(tt.enabled)(&o)
			if o.errorChecks != tt.enabled {
				t.Errorf("errorChecks = %v, want %v", o.errorChecks, tt.enabled)
			}
		})
	}
}

func TestNewGLAppliesOptionsInOrder(t *testing.T) {
	var order []int
	g, _ := newTestGL(t,
		WithTeardown(func() { order = append(order, 1) }),
		WithTeardown(func() { order = append(order, 2) }),
	)
	g.Release()
	if len(order) != 1 || order[0] != 2 {
		t.Errorf("teardown calls = %v, want only the last registered", order)
	}
}
