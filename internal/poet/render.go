package poet

import (
	"fmt"
	"sort"
	"strings"
)

// Renderer translates TypeSpec declarations into Go source. Supertype
// inheritance renders as struct embedding, contracts as compile-time
// interface assertions, and Private visibility as unexported identifiers
// (the identifier case is already applied when specs are built). Output is
// raw source; the formatting pass runs afterward.
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderFile renders a complete generated source file for one package.
// packagePath is the import path of the package being generated into; types
// declared there render unqualified and the path is never imported.
func (r *Renderer) RenderFile(packageName, packagePath string, types []*TypeSpec) string {
	var out strings.Builder

	out.WriteString("// Code generated by strut. DO NOT EDIT.\n")
	out.WriteString("// This file was automatically generated and should not be modified manually.\n\n")
	out.WriteString(fmt.Sprintf("package %s\n\n", packageName))

	imports := make(map[string]bool)
	for _, t := range types {
		t.CollectImports(imports)
	}
	delete(imports, packagePath)
	if len(imports) > 0 {
		paths := make([]string, 0, len(imports))
		for p := range imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		out.WriteString("import (\n")
		for _, p := range paths {
			out.WriteString(fmt.Sprintf("\t%q\n", p))
		}
		out.WriteString(")\n\n")
	}

	for i, t := range types {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(r.renderType(t, packagePath))
	}

	return out.String()
}

// RenderType renders one type declaration with its constructor and methods,
// qualifying every named type
func (r *Renderer) RenderType(t *TypeSpec) string {
	return r.renderType(t, "")
}

func (r *Renderer) renderType(t *TypeSpec, localPath string) string {
	var out strings.Builder

	if t.Doc != "" {
		for _, line := range strings.Split(t.Doc, "\n") {
			out.WriteString("// " + line + "\n")
		}
	}
	out.WriteString(fmt.Sprintf("type %s struct {\n", t.Name))
	if t.Extends != nil {
		out.WriteString(fmt.Sprintf("\t%s\n", t.Extends.StringIn(localPath)))
	}
	for _, f := range t.Fields {
		out.WriteString(fmt.Sprintf("\t%s %s\n", f.Name, f.Type.StringIn(localPath)))
	}
	out.WriteString("}\n")

	if t.Implements != nil {
		out.WriteString(fmt.Sprintf("\nvar _ %s = (*%s)(nil)\n", t.Implements.StringIn(localPath), t.Name))
	}

	if t.Constructor != nil {
		out.WriteString("\n")
		out.WriteString(r.renderConstructor(t, *t.Constructor, localPath))
	}

	for _, m := range t.Methods {
		out.WriteString("\n")
		out.WriteString(r.renderMethod(t, m, localPath))
	}

	return out.String()
}

func (r *Renderer) renderConstructor(t *TypeSpec, ctor MethodSpec, localPath string) string {
	var out strings.Builder
	name := ctor.Visibility.Apply("new" + t.Name)
	out.WriteString(fmt.Sprintf("func %s(%s) *%s {\n", name, renderParams(ctor.Params, localPath), t.Name))
	for _, s := range ctor.Statements {
		out.WriteString("\t" + s + "\n")
	}
	if len(ctor.Statements) == 0 {
		out.WriteString(fmt.Sprintf("\treturn &%s{}\n", t.Name))
	}
	out.WriteString("}\n")
	return out.String()
}

func (r *Renderer) renderMethod(t *TypeSpec, m MethodSpec, localPath string) string {
	var out strings.Builder
	if m.Deprecation != "" {
		out.WriteString("// Deprecated: " + m.Deprecation + "\n")
	}
	ret := ""
	if m.Returns != nil {
		ret = " " + m.Returns.StringIn(localPath)
	}
	out.WriteString(fmt.Sprintf("func (c *%s) %s(%s)%s {\n", t.Name, m.Name, renderParams(m.Params, localPath), ret))
	for _, s := range m.Statements {
		out.WriteString("\t" + s + "\n")
	}
	out.WriteString("}\n")
	return out.String()
}

func renderParams(params []ParamSpec, localPath string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Type.StringIn(localPath)
	}
	return strings.Join(parts, ", ")
}
