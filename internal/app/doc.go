// Package app wires application dependencies for the CLI.
//
// It resolves Config (defaults, passvault.yaml, PASSVAULT_* environment
// variables and flags, via viper), builds the logger, the file stores and
// the registry and vault services, exposing them through App.
package app
