package poet

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Visibility is the access level recorded on a generated declaration. The
// creator-synthesis rule tables are stated in these terms because
// ahead-of-time mode generates an inheritance chain of creator types;
// the renderer maps Public and Protected to exported identifiers and
// Private to unexported ones.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// String returns the lowercase name of the visibility level
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	default:
		return "private"
	}
}

// Apply adjusts the case of the identifier's first rune to match the
// visibility level: exported for Public and Protected, unexported for Private
func (v Visibility) Apply(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	if v == Private {
		return string(unicode.ToLower(r)) + name[size:]
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// FieldSpec describes one backing field of a generated type
type FieldSpec struct {
	Name       string
	Type       *TypeName
	Visibility Visibility
}

// ParamSpec describes one parameter of a generated method
type ParamSpec struct {
	Name string
	Type *TypeName
}

// MethodSpec is an immutable description of a generated method: its
// signature, markers, and body as an ordered list of statements. Statements
// are plain formatted strings; structure is recovered by the formatting pass
// after rendering.
type MethodSpec struct {
	Name        string
	Visibility  Visibility
	Override    bool   // implements a contract method
	Deprecation string // non-empty marks the method deprecated with this note
	Params      []ParamSpec
	Returns     *TypeName
	Statements  []string
	// Imports holds packages the statements reference beyond what the
	// signature types already pull in
	Imports []string
}

// MethodSpecBuilder builds a MethodSpec incrementally
type MethodSpecBuilder struct {
	spec MethodSpec
}

// NewMethod creates a builder for a method with the given name
func NewMethod(name string) *MethodSpecBuilder {
	return &MethodSpecBuilder{spec: MethodSpec{Name: name, Visibility: Public}}
}

// SetVisibility sets the method's visibility level
func (b *MethodSpecBuilder) SetVisibility(v Visibility) *MethodSpecBuilder {
	b.spec.Visibility = v
	return b
}

// Override marks the method as implementing a contract method
func (b *MethodSpecBuilder) Override() *MethodSpecBuilder {
	b.spec.Override = true
	return b
}

// Deprecated attaches a deprecation note rendered above the method
func (b *MethodSpecBuilder) Deprecated(note string) *MethodSpecBuilder {
	b.spec.Deprecation = note
	return b
}

// Param appends a parameter to the method signature
func (b *MethodSpecBuilder) Param(name string, t *TypeName) *MethodSpecBuilder {
	b.spec.Params = append(b.spec.Params, ParamSpec{Name: name, Type: t})
	return b
}

// Returns sets the method's return type
func (b *MethodSpecBuilder) Returns(t *TypeName) *MethodSpecBuilder {
	b.spec.Returns = t
	return b
}

// HasReturn reports whether a return type has been set
func (b *MethodSpecBuilder) HasReturn() bool {
	return b.spec.Returns != nil
}

// OnlyParam returns the single parameter of the method being built. It is an
// error to call it when the signature does not have exactly one parameter.
func (b *MethodSpecBuilder) OnlyParam() (ParamSpec, error) {
	if len(b.spec.Params) != 1 {
		return ParamSpec{}, fmt.Errorf("method %s has %d parameters, expected exactly 1", b.spec.Name, len(b.spec.Params))
	}
	return b.spec.Params[0], nil
}

// Statementf appends one formatted statement to the method body
func (b *MethodSpecBuilder) Statementf(format string, args ...interface{}) *MethodSpecBuilder {
	b.spec.Statements = append(b.spec.Statements, fmt.Sprintf(format, args...))
	return b
}

// AddImport records a package the method body references so the file's
// import block can include it
func (b *MethodSpecBuilder) AddImport(path string) *MethodSpecBuilder {
	b.spec.Imports = append(b.spec.Imports, path)
	return b
}

// Build returns the completed MethodSpec
func (b *MethodSpecBuilder) Build() MethodSpec {
	spec := b.spec
	spec.Params = append([]ParamSpec(nil), b.spec.Params...)
	spec.Statements = append([]string(nil), b.spec.Statements...)
	spec.Imports = append([]string(nil), b.spec.Imports...)
	return spec
}

// TypeSpec is an immutable description of one generated type declaration:
// modifiers, supertype wiring, fields, an optional constructor, and methods
type TypeSpec struct {
	Name        string
	Doc         string
	Visibility  Visibility
	Abstract    bool      // abstract types never receive a factory method
	Extends     *TypeName // base type whose fields and methods are inherited
	Implements  *TypeName // contract satisfied by this type
	Fields      []FieldSpec
	Constructor *MethodSpec
	Methods     []MethodSpec
}

// TypeSpecBuilder builds a TypeSpec incrementally
type TypeSpecBuilder struct {
	spec TypeSpec
}

// NewType creates a builder for a type declaration with the given name
func NewType(name string) *TypeSpecBuilder {
	return &TypeSpecBuilder{spec: TypeSpec{Name: name, Visibility: Public}}
}

// SetDoc sets the doc comment rendered above the type declaration
func (b *TypeSpecBuilder) SetDoc(doc string) *TypeSpecBuilder {
	b.spec.Doc = doc
	return b
}

// SetVisibility sets the declared visibility of the type
func (b *TypeSpecBuilder) SetVisibility(v Visibility) *TypeSpecBuilder {
	b.spec.Visibility = v
	return b
}

// Abstract marks the type as an abstract member of an inheritance chain
func (b *TypeSpecBuilder) Abstract() *TypeSpecBuilder {
	b.spec.Abstract = true
	return b
}

// Extends records the base type this declaration inherits from
func (b *TypeSpecBuilder) Extends(t *TypeName) *TypeSpecBuilder {
	b.spec.Extends = t
	return b
}

// Implements records the contract this declaration satisfies
func (b *TypeSpecBuilder) Implements(t *TypeName) *TypeSpecBuilder {
	b.spec.Implements = t
	return b
}

// AddField appends a field declaration
func (b *TypeSpecBuilder) AddField(f FieldSpec) *TypeSpecBuilder {
	b.spec.Fields = append(b.spec.Fields, f)
	return b
}

// SetConstructor records the type's constructor
func (b *TypeSpecBuilder) SetConstructor(m MethodSpec) *TypeSpecBuilder {
	b.spec.Constructor = &m
	return b
}

// AddMethod appends a method declaration
func (b *TypeSpecBuilder) AddMethod(m MethodSpec) *TypeSpecBuilder {
	b.spec.Methods = append(b.spec.Methods, m)
	return b
}

// Build returns the completed TypeSpec
func (b *TypeSpecBuilder) Build() *TypeSpec {
	spec := b.spec
	spec.Fields = append([]FieldSpec(nil), b.spec.Fields...)
	spec.Methods = append([]MethodSpec(nil), b.spec.Methods...)
	return &spec
}

// MethodByName returns the method with the given name, if present
func (t *TypeSpec) MethodByName(name string) (MethodSpec, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSpec{}, false
}

// CollectImports adds every import path referenced by the declaration to the set
func (t *TypeSpec) CollectImports(imports map[string]bool) {
	t.Extends.CollectImports(imports)
	t.Implements.CollectImports(imports)
	for _, f := range t.Fields {
		f.Type.CollectImports(imports)
	}
	methods := t.Methods
	if t.Constructor != nil {
		methods = append(methods, *t.Constructor)
	}
	for _, m := range methods {
		for _, p := range m.Params {
			p.Type.CollectImports(imports)
		}
		m.Returns.CollectImports(imports)
		for _, path := range m.Imports {
			imports[path] = true
		}
	}
}
