// Package discord is the client for the remote command registry: a
// Discord-style application command API.
//
// A synchronization needs two calls. ResolveIdentity asks the API which
// application the configured credential belongs to; ReplaceCommands then
// overwrites that application's command set for one guild with a complete
// catalog. Neither call is retried. Their failures are reported as distinct
// error kinds (*IdentityResolutionError, *RegistrationError) so that callers
// can layer their own retry policy on top.
package discord
