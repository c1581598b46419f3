// Package hcl_adapter loads the project file, written in HCL, into the
// format-agnostic config.Model.
//
//	project {
//	  root             = "schemas"
//	  inputs           = ["schemas"]
//	  namespace_prefix = "com.acme"
//	}
//
//	output {
//	  path    = "build/schemas.json"
//	  format  = "yaml"
//	  compact = false
//	}
//
//	metrics {
//	  file = "build/typecollect.prom"
//	}
//
// Every block is optional and may appear at most once. Relative paths are
// resolved against the directory of the project file.
package hcl_adapter
