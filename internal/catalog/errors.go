package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownUnit is the cause recorded when a reference has no registered unit.
var ErrUnknownUnit = errors.New("unit is not registered")

// UnitLoadError reports that one definition unit could not be loaded. It is
// recovered locally: the unit is left out of the catalog and the run goes on.
type UnitLoadError struct {
	Ref string
	Err error
}

func (e *UnitLoadError) Error() string {
	return fmt.Sprintf("load unit %q: %v", e.Ref, e.Err)
}

func (e *UnitLoadError) Unwrap() error { return e.Err }
