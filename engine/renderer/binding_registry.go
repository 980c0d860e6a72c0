package renderer

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/rusteroids/engine/gpu"
)

// Layout names registered by NewRenderer.
const (
	CameraLayout = "camera"
	ModelLayout  = "model"
)

// BindingRegistry maps a layout name to the bind group layout shared by every resource of that kind.
type BindingRegistry struct {
	layouts map[string]gpu.BindGroupLayout
}

// NewBindingRegistry returns an empty registry.
func NewBindingRegistry() *BindingRegistry {
	return &BindingRegistry{layouts: make(map[string]gpu.BindGroupLayout)}
}

// Register stores a layout under name, replacing any previous one.
//
// Parameters:
//   - name: the lookup key
//   - layout: the bind group layout
func (r *BindingRegistry) Register(name string, layout gpu.BindGroupLayout) {
	r.layouts[name] = layout
}

// Layout returns the layout registered under name. Panics if the name was never registered.
//
// Parameters:
//   - name: the lookup key
//
// Returns:
//   - gpu.BindGroupLayout: the registered layout
func (r *BindingRegistry) Layout(name string) gpu.BindGroupLayout {
	l, ok := r.layouts[name]
	if !ok {
		panic(fmt.Sprintf("binding registry: no layout registered as %q", name))
	}
	return l
}

// Names returns the registered names in sorted order.
func (r *BindingRegistry) Names() []string {
	names := make([]string, 0, len(r.layouts))
	for n := range r.layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Release frees every registered layout once, even when it is registered under several names.
func (r *BindingRegistry) Release() {
	released := make(map[gpu.BindGroupLayout]bool, len(r.layouts))
	for name, l := range r.layouts {
		if !released[l] {
			l.Release()
			released[l] = true
		}
		delete(r.layouts, name)
	}
}
