// Package integration_tests runs the whole pipeline, from project file and
// flags to written schemas, against fixtures in a temporary directory.
package integration_tests
