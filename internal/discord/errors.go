package discord

import "fmt"

// IdentityResolutionError means the application owning the credential could
// not be determined. No commands are pushed after it.
type IdentityResolutionError struct {
	StatusCode int // zero when no response was received
	Err        error
}

func (e *IdentityResolutionError) Error() string {
	return fmt.Sprintf("resolve application identity: %v", e.Err)
}

func (e *IdentityResolutionError) Unwrap() error { return e.Err }

// RegistrationError means the bulk replace was not applied. The remote
// command set is whatever it was before the call.
type RegistrationError struct {
	Scope      string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("replace commands for scope %q: %v", e.Scope, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
