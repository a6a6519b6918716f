// Package catalog turns command definition units into the ordered catalog
// that is pushed to the remote command registry.
//
// A Loader materializes one unit into a Descriptor and contains every failure
// of that unit (errors, malformed data, panics) in a *UnitLoadError. Build runs
// the loader over all discovered units concurrently, waits for all of them to
// settle, and returns the successful descriptors in discovery order.
package catalog
