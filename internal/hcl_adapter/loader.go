package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/typecollect/internal/config"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/tchcl"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL project file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the project file at path and translates its blocks into the
// model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL project loader started.", "path", path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}

	model := &config.Model{Path: path}
	var project ProjectBlock
	var output OutputBlock
	var metrics MetricsBlock
	targets := []struct {
		name string
		val  any
	}{{"project", &project}, {"output", &output}, {"metrics", &metrics}}
	for _, target := range targets {
		block, d := tchcl.FindUniqueBlock(content.Blocks, target.name)
		diags = append(diags, d...)
		if block == nil {
			continue
		}
		diags = append(diags, gohcl.DecodeBody(block.Body, nil, target.val)...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}

	dir := filepath.Dir(path)
	model.Project = config.Project{
		Root:            resolve(dir, project.Root),
		NamespacePrefix: project.NamespacePrefix,
	}
	for _, in := range project.Inputs {
		model.Project.Inputs = append(model.Project.Inputs, resolve(dir, in))
	}
	model.Output = config.Output{
		Path:    resolve(dir, output.Path),
		Format:  output.Format,
		Compact: output.Compact,
	}
	model.Metrics = config.Metrics{File: resolve(dir, metrics.File)}

	logger.Debug("HCL project loading complete.", "inputs", len(model.Project.Inputs), "format", model.Output.Format)
	return model, nil
}

// resolve makes p relative to dir unless it is empty or absolute.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

var _ config.Loader = (*Loader)(nil)

