package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGoCodeString formats Go source code, resolving and grouping imports
// the way goimports does
func FormatGoCodeString(filename, source string) (string, error) {
	formatted, err := imports.Process(filename, []byte(source), nil)
	if err == nil {
		return string(formatted), nil
	}

	// Fall back to plain gofmt formatting; imports.Process can fail on code
	// that is still syntactically valid.
	gofmted, fmtErr := format.Source([]byte(source))
	if fmtErr == nil {
		return string(gofmted), nil
	}

	// Parse to distinguish invalid syntax from a formatter limitation.
	fset := token.NewFileSet()
	if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
		return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
	}
	return source, err
}

// FormatAndWriteGoFile formats Go code and writes it to a file. When
// formatting fails the unformatted code is written anyway so the problem can
// be inspected, and the formatting error is returned.
func FormatAndWriteGoFile(filename string, code string) error {
	formatted, err := FormatGoCodeString(filename, code)
	if writeErr := os.WriteFile(filename, []byte(formatted), 0644); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", filename, writeErr)
	}
	return err
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
