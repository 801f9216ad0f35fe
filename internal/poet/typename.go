package poet

import (
	"fmt"
	"path"
	"strings"
)

// TypeKind discriminates the structural forms a TypeName can take
type TypeKind int

const (
	KindNamed TypeKind = iota
	KindPointer
	KindSlice
	KindMap
)

// TypeName is a structured reference to a type used in generated declarations.
// It models just enough of the type grammar for creator synthesis: named types
// with an optional import path, pointers, slices, maps, and type arguments.
type TypeName struct {
	Kind       TypeKind
	ImportPath string // import path for named types; empty for builtins and local types
	Name       string // simple name for named types
	Key        *TypeName
	Elem       *TypeName
	TypeArgs   []*TypeName
}

// Named creates a TypeName for a named type in the given package
func Named(importPath, name string) *TypeName {
	return &TypeName{Kind: KindNamed, ImportPath: importPath, Name: name}
}

// Local creates a TypeName for a type in the generated package itself
func Local(name string) *TypeName {
	return &TypeName{Kind: KindNamed, Name: name}
}

// PointerTo creates a pointer TypeName
func PointerTo(elem *TypeName) *TypeName {
	return &TypeName{Kind: KindPointer, Elem: elem}
}

// SliceOf creates a slice TypeName
func SliceOf(elem *TypeName) *TypeName {
	return &TypeName{Kind: KindSlice, Elem: elem}
}

// MapOf creates a map TypeName
func MapOf(key, elem *TypeName) *TypeName {
	return &TypeName{Kind: KindMap, Key: key, Elem: elem}
}

// String renders the type reference as it appears in source, qualifying named
// types with the base name of their import path
func (t *TypeName) String() string {
	return t.StringIn("")
}

// StringIn renders the type reference as seen from the package with the given
// import path: types declared in that package stay unqualified, everything
// else is qualified with the base name of its import path.
func (t *TypeName) StringIn(localPath string) string {
	switch t.Kind {
	case KindPointer:
		return "*" + t.Elem.StringIn(localPath)
	case KindSlice:
		return "[]" + t.Elem.StringIn(localPath)
	case KindMap:
		return fmt.Sprintf("map[%s]%s", t.Key.StringIn(localPath), t.Elem.StringIn(localPath))
	default:
		name := t.Name
		if t.ImportPath != "" && t.ImportPath != localPath {
			name = path.Base(t.ImportPath) + "." + name
		}
		if len(t.TypeArgs) > 0 {
			args := make([]string, len(t.TypeArgs))
			for i, a := range t.TypeArgs {
				args[i] = a.StringIn(localPath)
			}
			name += "[" + strings.Join(args, ", ") + "]"
		}
		return name
	}
}

// CanonicalKey returns a stable identity string that disambiguates named types
// by their full import path, unlike String which uses the package alias
func (t *TypeName) CanonicalKey() string {
	switch t.Kind {
	case KindPointer:
		return "*" + t.Elem.CanonicalKey()
	case KindSlice:
		return "[]" + t.Elem.CanonicalKey()
	case KindMap:
		return fmt.Sprintf("map[%s]%s", t.Key.CanonicalKey(), t.Elem.CanonicalKey())
	default:
		name := t.Name
		if t.ImportPath != "" {
			name = t.ImportPath + "." + name
		}
		if len(t.TypeArgs) > 0 {
			args := make([]string, len(t.TypeArgs))
			for i, a := range t.TypeArgs {
				args[i] = a.CanonicalKey()
			}
			name += "[" + strings.Join(args, ",") + "]"
		}
		return name
	}
}

// SimpleName returns the undecorated simple name of the underlying named type,
// unwrapping pointers and slices
func (t *TypeName) SimpleName() string {
	switch t.Kind {
	case KindPointer, KindSlice:
		return t.Elem.SimpleName()
	case KindMap:
		return t.Elem.SimpleName()
	default:
		return t.Name
	}
}

// RawName returns the qualified name of the underlying named type without
// pointer, slice, map, or type-argument decoration. Used in user-facing
// messages embedded in generated code.
func (t *TypeName) RawName() string {
	switch t.Kind {
	case KindPointer, KindSlice, KindMap:
		return t.Elem.RawName()
	default:
		if t.ImportPath != "" {
			return path.Base(t.ImportPath) + "." + t.Name
		}
		return t.Name
	}
}

// CollectImports adds every import path referenced by this type to the set
func (t *TypeName) CollectImports(imports map[string]bool) {
	if t == nil {
		return
	}
	if t.ImportPath != "" {
		imports[t.ImportPath] = true
	}
	t.Key.CollectImports(imports)
	t.Elem.CollectImports(imports)
	for _, a := range t.TypeArgs {
		a.CollectImports(imports)
	}
}
