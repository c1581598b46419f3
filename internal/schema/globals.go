package schema

// Globals returns the names every module can reference without importing,
// mapped to the primitive they denote.
func Globals() map[string]any {
	return map[string]any{
		"null":    Null,
		"boolean": Boolean,
		"bool":    Boolean,
		"int":     Int,
		"long":    Long,
		"float":   Float,
		"double":  Double,
		"number":  Double,
		"bytes":   Bytes,
		"string":  String,
	}
}
