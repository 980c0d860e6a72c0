package wgpu_backend

// BackendBuilderOption is a functional option applied to a Backend in NewBackend.
type BackendBuilderOption func(*Backend)

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - BackendBuilderOption: a function that applies the option to a backend
func WithForceFallbackAdapter(force bool) BackendBuilderOption {
	return func(b *Backend) {
		b.forceFallbackAdapter = force
	}
}
