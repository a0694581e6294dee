// Package commands defines the passvault CLI and wires dependencies for subcommands.
//
// Commands
//
//   - users        List registered usernames
//   - register     Create an account and its empty vault
//   - unregister   Delete an account and its vault
//   - set-email    Change an account's email address
//   - passwd       Change an account's password
//   - add          Store or replace a service credential
//   - get          Show a service credential, or copy its password with --copy
//   - rm           Remove a service credential
//   - list         List stored services
//   - export       Write the account and its vault to a file
//   - whoami       Check credentials and print the authenticated user
//
// # Implementation
//
// The root command resolves the configuration and builds the app (stores,
// services, logger) before any subcommand runs. Commands that touch a vault
// authenticate with --user and --password, prompting for the password when
// the flag is absent, and log the session out when they finish.
package commands
