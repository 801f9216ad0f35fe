package poet

import (
	"fmt"
	"go/token"
)

// UniqueNameSet allocates collision-free identifiers within a single
// declaration's namespace. It is scoped to one creator and discarded
// afterward; no state crosses invocations.
type UniqueNameSet struct {
	used map[string]bool
}

// NewUniqueNameSet creates an empty name set
func NewUniqueNameSet() *UniqueNameSet {
	return &UniqueNameSet{used: make(map[string]bool)}
}

// GetUniqueName returns base if it is still free, otherwise base with the
// lowest numeric suffix (starting at 2) that makes it unique. The returned
// name is claimed.
func (s *UniqueNameSet) GetUniqueName(base string) string {
	name := base
	for i := 2; s.used[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	s.used[name] = true
	return name
}

// Claim marks a name as taken without deriving a fresh one
func (s *UniqueNameSet) Claim(name string) {
	s.used[name] = true
}

// SafeIdentifier returns name unchanged unless it is a Go keyword, in which
// case a trailing underscore makes it usable as an identifier
func SafeIdentifier(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}
