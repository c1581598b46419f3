// Package extractors holds the declaration and definition extractor groups
// for the HCL type dialect.
//
// Declaration extractors run once per file. They register imports, exports
// and raw declarations without looking inside them. Definition extractors run
// when a declared name is first needed; they resolve references through Query
// commands and define the resulting schemas.
//
// Records and enums are defined before their fields are resolved, so a record
// may refer to itself or to a record that refers back to it. Aliases define
// only after their target resolves.
package extractors
