// Package collector is the resolution engine that turns parsed source files
// into an ordered list of resolved schemas.
//
// # Why Collector Exists
//
// Type declarations reference each other across files, before they are
// declared, and in cycles. A single recursive pass cannot resolve that: the
// type it needs may live in a file nobody has loaded yet, or may be defined
// by a declaration that is itself waiting on the current one. The Collector
// breaks the work into small tasks that suspend instead of failing and are
// resumed by a scheduler until every name is resolved or nothing can move.
//
// # How It Works
//
// A run has four cooperating parts:
//  1. Load: a file is read, parsed and registered as a Module with its own
//     root scope. Loading the same path twice is a no-op.
//  2. Walk: an explicit-stack depth-first walk finds the nodes a group of
//     extractors is rooted on and spawns one task per node.
//  3. Drive: a task runs its extractor. The extractor emits Commands, child
//     nodes or node slices; the driver interprets each one against the
//     current scope and resumes the extractor with the outcome.
//  4. Resolve: a query for a name that is not defined yet drives the name to
//     a definition. This may load another module, instantiate a generic
//     declaration or simply suspend until another task defines it.
//
// # Resolution States
//
// A name only ever advances along External, Declaration, Template and
// Definition. Observing a regression is reported as ErrProtocol; an import
// that points at another import is reported as ErrReexport.
//
// # Re-entrancy
//
// Loading a module from inside a task registers it and spawns its tasks into
// the ring that is already draining. Only the outermost Collect call drains.
//
// A Collector holds the state of one run and is not safe for concurrent use.
// After Collect returns an error the Collector must be discarded.
package collector
