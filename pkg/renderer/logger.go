package renderer

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
