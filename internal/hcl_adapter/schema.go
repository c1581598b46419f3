package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// rootSchema lists the blocks a project file may contain.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "project"},
		{Type: "output"},
		{Type: "metrics"},
	},
}

// ProjectBlock is the HCL shape of the project block.
type ProjectBlock struct {
	Root            string   `hcl:"root,optional"`
	Inputs          []string `hcl:"inputs,optional"`
	NamespacePrefix string   `hcl:"namespace_prefix,optional"`
}

// OutputBlock is the HCL shape of the output block.
type OutputBlock struct {
	Path    string `hcl:"path,optional"`
	Format  string `hcl:"format,optional"`
	Compact bool   `hcl:"compact,optional"`
}

// MetricsBlock is the HCL shape of the metrics block.
type MetricsBlock struct {
	File string `hcl:"file,optional"`
}
