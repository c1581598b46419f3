// Package tchcl holds small helpers on top of hashicorp/hcl shared by the
// source parser and the project file loader. Every helper reports problems as
// hcl.Diagnostics with a source range.
package tchcl
