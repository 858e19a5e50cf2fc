package gostim

import "fmt"

// ParameterError reports an invalid argument passed to a gostim operation,
// such as requesting both a frame-count and a duration repeat on the same
// presentation.
type ParameterError struct {
	// Op is the operation that rejected the argument ("present", "parse color").
	Op string
	// Msg describes what was wrong with the argument.
	Msg string
}

func (e *ParameterError) Error() string {
	return "gostim: " + e.Op + ": " + e.Msg
}

// ResourceError reports a failure to acquire or create a platform or GPU
// resource (window surface, texture, pipeline, swapchain frame).
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("gostim: %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// DecodeError reports a failure to decode external content such as an image
// file, a font face, or a gamma lookup table.
type DecodeError struct {
	// What names the content that failed to decode.
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gostim: decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TimingError reports a frame timing violation, such as the platform never
// confirming a presented frame.
type TimingError struct {
	Msg string
}

func (e *TimingError) Error() string {
	return "gostim: timing: " + e.Msg
}

// MonitorError reports a failure to query or select a display monitor.
type MonitorError struct {
	Msg string
}

func (e *MonitorError) Error() string {
	return "gostim: monitor: " + e.Msg
}
