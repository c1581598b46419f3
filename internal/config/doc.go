// Package config defines the format-agnostic project model and the Loader
// interface that reads it from a project file.
//
// The Model only carries settings. It is merged with command-line flags by
// the app package; concrete loaders, such as the HCL one, live in separate
// packages.
package config
