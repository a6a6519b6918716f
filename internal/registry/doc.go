// Package registry is the closed, compiled-in set of command definition
// units.
//
// Every unit is registered under a unit reference (an opaque locator such as
// "builtin/ping.cmd" or the path of a manifest file) together with a Factory
// that materializes it. The registration order is the discovery order: it is
// the order in which units are loaded and, for successful loads, the order of
// the synchronized catalog.
//
// Units are registered once at startup by Modules, mirroring how modules are
// compiled into the binary. There is no runtime import or reflection: a
// reference that was never registered simply does not exist.
package registry
