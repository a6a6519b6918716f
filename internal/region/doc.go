// Package region maps a player's region identifier to the game server that
// hosts it.
//
// A Directory is built once from a list of entries, validated up front, and
// is read-only afterwards. Lookups never fall back to another region: an
// identifier that is not in the table is reported as an UnknownRegionError.
package region
