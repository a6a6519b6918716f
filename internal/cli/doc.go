// Package cli is responsible for parsing command-line arguments and the
// environment, validating user input, and handling process-level concerns
// like exit codes. It translates both into the application's configuration.
package cli
