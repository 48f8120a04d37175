package quadtree

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("quadtree: invalid config")

// InvalidDepthError is returned when a view or sequence depth is outside of
// the range of depths the tree actually reached.
type InvalidDepthError struct {
	Requested int
	Max       int
}

func (e *InvalidDepthError) Error() string {
	return fmt.Sprintf("quadtree: depth %d is out of range, the tree has depths 0 to %d", e.Requested, e.Max)
}
