package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/extractors"
	"github.com/specialistvlad/typecollect/internal/metrics"
	"github.com/specialistvlad/typecollect/internal/namespace"
	"github.com/specialistvlad/typecollect/internal/scheduler"
	"github.com/specialistvlad/typecollect/internal/schema"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Parser turns the source text of one file into a syntax tree.
type Parser interface {
	Parse(filename string, src []byte) (*syntax.Node, error)
}

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace sets the policy that derives a module's namespace from its
// path relative to the root.
func WithNamespace(f namespace.Func) Option {
	return func(c *Collector) { c.namespace = f }
}

// WithRoot sets the directory module paths are made relative to before the
// namespace policy sees them.
func WithRoot(dir string) Option {
	return func(c *Collector) { c.root = dir }
}

// WithMetrics records run counters into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Collector) { c.metrics = m }
}

// WithReadFile replaces the function used to read source files.
func WithReadFile(read func(path string) ([]byte, error)) Option {
	return func(c *Collector) { c.readFile = read }
}

// WithExtension sets the extension appended to module paths that have none.
func WithExtension(ext string) Option {
	return func(c *Collector) { c.extension = ext }
}

// WithGroups replaces the declaration and definition extractor groups.
func WithGroups(declaration, definition *command.Group) Option {
	return func(c *Collector) {
		c.declaration = declaration
		c.definition = definition
	}
}

// WithGlobals replaces the definitions of the global scope.
func WithGlobals(defs map[string]any) Option {
	return func(c *Collector) { c.globals = defs }
}

// Collector owns the state of one resolution run: the module registry, the
// output list and the scheduler ring.
type Collector struct {
	parser      Parser
	declaration *command.Group
	definition  *command.Group
	namespace   namespace.Func
	root        string
	extension   string
	readFile    func(string) ([]byte, error)
	metrics     *metrics.Collector
	globals     map[string]any

	global    *scope.Scope
	modules   map[string]*scope.Module
	collected map[string]bool
	schemas   []command.Named
	ring      *scheduler.Ring
	claimed   map[claim][][]any
	draining  bool
	nextID    int
}

// New creates a Collector for a fresh run.
func New(p Parser, opts ...Option) *Collector {
	c := &Collector{
		parser:      p,
		declaration: extractors.Declaration(),
		definition:  extractors.Definition(),
		namespace:   namespace.FromPath,
		root:        ".",
		extension:   ".hcl",
		readFile:    os.ReadFile,
		globals:     schema.Globals(),
		modules:     make(map[string]*scope.Module),
		collected:   make(map[string]bool),
		ring:        scheduler.New(),
		claimed:     make(map[claim][][]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.global = scope.Global(c.globals)
	return c
}

// Schemas returns the resolved schemas in the order they were defined.
func (c *Collector) Schemas() []command.Named {
	return c.schemas
}

// Modules returns the number of modules loaded so far.
func (c *Collector) Modules() int {
	return len(c.modules)
}

// Collect loads the file at path and resolves every name it exports. Files
// it imports are loaded as needed. Collecting a path a second time only
// resolves its exports if that has not happened yet.
func (c *Collector) Collect(ctx context.Context, path string) error {
	abs, err := c.normalize(path)
	if err != nil {
		return err
	}
	ctx = ctxlog.With(ctx, "module", abs)
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	if err := c.load(ctx, abs, false); err != nil {
		return err
	}

	c.metrics.ObserveRun(time.Since(start).Seconds())
	logger.Debug("Module collected.", "schemas", len(c.schemas), "modules", len(c.modules))
	return nil
}

// load registers the module at path and walks it with the declaration group.
// Only a call made while no drain is running drains the ring; nested calls
// return right after their tasks are spawned. Unless internal is set, the
// module's exports are resolved once the declarations have settled.
func (c *Collector) load(ctx context.Context, path string, internal bool) error {
	logger := ctxlog.FromContext(ctx)

	m, loaded := c.modules[path]
	if !loaded {
		var err error
		if m, err = c.register(ctx, path); err != nil {
			return err
		}
	}

	if c.draining {
		return nil
	}
	if loaded && (internal || c.collected[path]) {
		logger.Debug("Module already loaded, skipping.", "path", path)
		return nil
	}

	c.draining = true
	defer func() { c.draining = false }()

	if err := c.drain(ctx); err != nil {
		return err
	}
	if internal {
		return nil
	}

	c.collected[path] = true
	for _, e := range m.Exports() {
		c.spawnExport(ctx, e)
	}
	return c.drain(ctx)
}

func (c *Collector) register(ctx context.Context, path string) (*scope.Module, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := c.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module %s: %w", path, err)
	}
	tree, err := c.parser.Parse(path, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	m := scope.NewModule(path, c.namespace(c.relative(path)))
	root := c.global.Extend(m)
	c.modules[path] = m
	c.metrics.ModuleLoaded()
	logger.Debug("Module registered.", "path", path, "namespace", m.Namespace)

	c.walk(ctx, c.declaration, tree, root, nil)
	return m, nil
}

func (c *Collector) drain(ctx context.Context) error {
	before := c.ring.Turns()
	err := c.ring.Drain(ctx)
	c.metrics.Turns(c.ring.Turns() - before)
	if errors.Is(err, scheduler.ErrDeadlock) {
		c.metrics.Deadlock()
	}
	return err
}

// normalize makes path absolute and appends the default extension when the
// path has none.
func (c *Collector) normalize(path string) (string, error) {
	if filepath.Ext(path) == "" && c.extension != "" {
		path += c.extension
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve module path %s: %w", path, err)
	}
	return abs, nil
}

func (c *Collector) relative(path string) string {
	root, err := filepath.Abs(c.root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
