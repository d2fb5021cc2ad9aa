// Package app contains the optlint application logic. It defines the App
// struct, its configuration, and the lint lifecycle, decoupled from any
// specific entrypoint like a CLI.
package app
