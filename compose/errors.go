package compose

import "fmt"

// ConfigurationError means the supplied configuration cannot produce a
// document: unparseable input, missing client identity, or strict-mode
// financial rejection. No document tree is produced.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// AssemblyError means an internal invariant was broken while building the
// tree. It is a programming defect, not bad user input, and should be
// unreachable once Normalize has accepted the configuration.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "assembly error: " + e.Reason
}

func assemblyErrorf(format string, args ...any) error {
	return &AssemblyError{Reason: fmt.Sprintf(format, args...)}
}
