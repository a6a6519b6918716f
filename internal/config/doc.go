// Package config defines the format-agnostic configuration model for the
// synchronizer, the Loader interface implemented by format-specific packages
// (see internal/hcl), and the environment-sourced settings: the API
// credential and the scope whose command set is replaced.
package config
