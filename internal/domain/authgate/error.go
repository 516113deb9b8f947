// internal/domain/authgate/error.go
package authgate

import (
	"errors"
	"fmt"
)

// ProviderError carries a normalized provider code alongside the raw error.
// Handlers key buyer-facing messages off the code; the raw error stays in logs.
type ProviderError struct {
	Code Code
	Err  error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("authgate: %s", e.Code)
	}
	return fmt.Sprintf("authgate: %s: %v", e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapProvider attaches a code to a raw provider error.
func WrapProvider(code Code, err error) error {
	return &ProviderError{Code: Normalize(string(code)), Err: err}
}

// CodeOf extracts the provider code from an error chain.
// Anything that is not a ProviderError maps to CodeUnknown.
func CodeOf(err error) Code {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeUnknown
}
