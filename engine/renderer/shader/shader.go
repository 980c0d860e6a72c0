// Package shader holds the embedded WGSL program and a small reflector used to check that the
// program agrees with the host-side vertex and binding layouts before a pipeline is compiled.
package shader

import (
	_ "embed"
)

// Source is the line-strip program used for every geometry: camera at group 0, model at group 1,
// and a position/color vertex input.
//
//go:embed assets/shader.wgsl
var Source string

// Default reflects the embedded program. Panics if the embedded source does not parse.
//
// Returns:
//   - Reflection: the parsed entry points, bindings, and vertex inputs
func Default() Reflection {
	r, err := Reflect(Source)
	if err != nil {
		panic(err)
	}
	return r
}
