// Package app contains the core application logic. It merges command-line
// settings with the project file, runs the collector over the inputs and
// writes the result, decoupled from any specific entrypoint like a CLI.
package app
