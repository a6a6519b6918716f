package region

import "fmt"

// UnknownRegionError is returned by Resolve for identifiers missing from the table.
type UnknownRegionError struct {
	Region string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q", e.Region)
}
