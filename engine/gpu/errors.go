package gpu

import (
	"github.com/pkg/errors"
)

// Sentinel frame-acquisition errors. Match them with errors.Is.
var (
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrSurfaceTimeout  = errors.New("surface timeout")
)

// FrameError is returned when a presentable image could not be acquired.
type FrameError struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Cause is the backend error that was classified, if any.
	Cause error
}

// NewFrameError classifies cause under kind.
//
// Parameters:
//   - kind: one of ErrSurfaceLost, ErrSurfaceOutdated, ErrOutOfMemory, ErrSurfaceTimeout
//   - cause: the backend error, may be nil
//
// Returns:
//   - *FrameError: the classified error
func NewFrameError(kind, cause error) *FrameError {
	return &FrameError{Kind: kind, Cause: cause}
}

func (e *FrameError) Error() string {
	if e.Cause == nil {
		return "acquire frame: " + e.Kind.Error()
	}
	return "acquire frame: " + e.Kind.Error() + ": " + e.Cause.Error()
}

// Is matches the error against its Kind.
func (e *FrameError) Is(target error) bool {
	return target == e.Kind
}

func (e *FrameError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether err asks for a surface reconfiguration (Lost or Outdated).
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// IsFatal reports whether err should terminate the frame loop.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}

// IsTimeout reports whether err is a presentation timeout; the frame is skipped.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrSurfaceTimeout)
}
