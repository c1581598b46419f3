package config

// DefaultFile is the name of the project file looked up in the working
// directory when none is given.
const DefaultFile = "typecollect.hcl"

// Model is the unified, format-agnostic representation of a project file.
// Zero values mean "not set" so that flags can fill the gaps.
type Model struct {
	// Path is the file the model was read from, empty for a default model.
	Path    string
	Project Project
	Output  Output
	Metrics Metrics
}

// Project describes where the sources live and how they are named.
type Project struct {
	// Root is the directory module paths are made relative to when deriving
	// namespaces.
	Root            string
	Inputs          []string
	NamespacePrefix string
}

// Output describes where and how the collected schemas are written.
type Output struct {
	Path    string
	Format  string
	Compact bool
}

// Metrics describes where run metrics are written.
type Metrics struct {
	File string
}
