package schema

type recordDoc struct {
	Type      string     `json:"type" yaml:"type"`
	Name      string     `json:"name" yaml:"name"`
	Namespace string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Doc       string     `json:"doc,omitempty" yaml:"doc,omitempty"`
	Fields    []fieldDoc `json:"fields" yaml:"fields"`
}

type fieldDoc struct {
	Name    string `json:"name" yaml:"name"`
	Type    any    `json:"type" yaml:"type"`
	Doc     string `json:"doc,omitempty" yaml:"doc,omitempty"`
	Default *any   `json:"default,omitempty" yaml:"default,omitempty"`
}

type enumDoc struct {
	Type      string   `json:"type" yaml:"type"`
	Name      string   `json:"name" yaml:"name"`
	Namespace string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Doc       string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Symbols   []string `json:"symbols" yaml:"symbols"`
}

type arrayDoc struct {
	Type  string `json:"type" yaml:"type"`
	Items any    `json:"items" yaml:"items"`
}

type mapDoc struct {
	Type   string `json:"type" yaml:"type"`
	Values any    `json:"values" yaml:"values"`
}

// Document returns the encodable form of a top-level schema. Named types are
// written in full; named types nested inside them are written by name.
func Document(t Type) any {
	switch v := t.(type) {
	case *Record:
		return recordDocument(v)
	case *Enum:
		return enumDoc{Type: "enum", Name: v.Name, Namespace: v.Namespace, Doc: v.Doc, Symbols: v.Symbols}
	default:
		return reference(t)
	}
}

func recordDocument(r *Record) recordDoc {
	doc := recordDoc{
		Type:      "record",
		Name:      r.Name,
		Namespace: r.Namespace,
		Doc:       r.Doc,
		Fields:    make([]fieldDoc, 0, len(r.Fields)),
	}
	for _, f := range r.Fields {
		fd := fieldDoc{Name: f.Name, Type: reference(f.Type), Doc: f.Doc}
		if f.HasDefault {
			def := f.Default
			fd.Default = &def
		}
		doc.Fields = append(doc.Fields, fd)
	}
	return doc
}

func reference(t Type) any {
	switch v := t.(type) {
	case nil:
		return nil
	case Primitive:
		return string(v)
	case Ref:
		return string(v)
	case *Record:
		if v.Inline {
			return recordDocument(v)
		}
		return v.FullName()
	case *Enum:
		return v.FullName()
	case *Array:
		return arrayDoc{Type: "array", Items: reference(v.Items)}
	case *Map:
		return mapDoc{Type: "map", Values: reference(v.Values)}
	case Union:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = reference(m)
		}
		return out
	default:
		return nil
	}
}
