package collector

import "errors"

var (
	// ErrParse is returned when a source file cannot be parsed.
	ErrParse = errors.New("parse error")
	// ErrUndeclared is returned when a queried name is not bound anywhere.
	ErrUndeclared = errors.New("undeclared name")
	// ErrProtocol is returned when extractor data breaks the resolution
	// protocol, for example when a name's resolution state regresses.
	ErrProtocol = errors.New("protocol violation")
	// ErrReexport is returned when an imported name is itself an import in
	// the target module.
	ErrReexport = errors.New("re-exported imports are not supported")
	// ErrScope is returned when an extractor exits a module's root scope.
	ErrScope = errors.New("scope discipline violation")

	errStopped = errors.New("task stopped")
)
