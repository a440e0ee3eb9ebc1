package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Upstream and fallback errors
	ErrUpstreamUnavailable = fmt.Errorf("upstream source unavailable")
	ErrSnapshotNotFound    = fmt.Errorf("snapshot not found")
	ErrTenantNotFound      = fmt.Errorf("tenant not found")
	ErrTimeout             = fmt.Errorf("operation timed out")

	// API and matching errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMatchInconclusive  = fmt.Errorf("no conclusive stream match")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
