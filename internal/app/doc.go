// Package app contains the core application logic. It defines the App
// struct, its configuration, and the translation lifecycle, decoupled from
// the CLI entrypoint.
package app
