package creator

import "github.com/strut-dev/strut/internal/models"

// RequirementStatus is the status a component requirement has in a creator,
// governing whether and how a setter method is generated for it
type RequirementStatus int

const (
	// StatusNeeded means an instance is needed to create the component; the
	// setter assigns its backing field
	StatusNeeded RequirementStatus = iota

	// StatusUnneeded means an instance is not needed to create the component,
	// but the requirement is for a module owned by the component. Setting it
	// is a no-op and the setter is marked deprecated as a warning.
	StatusUnneeded

	// StatusUnsettableRepeatedModule means the requirement may not be set in
	// this creator because its module is already inherited from an ancestor
	// component; the setter unconditionally fails
	StatusUnsettableRepeatedModule

	// StatusImplementedInSupertype means the requirement is settable, but the
	// setter implementation already exists on a base creator; no method is
	// generated here
	StatusImplementedInSupertype
)

// String returns a readable name for the status
func (s RequirementStatus) String() string {
	switch s {
	case StatusNeeded:
		return "needed"
	case StatusUnneeded:
		return "unneeded"
	case StatusUnsettableRepeatedModule:
		return "unsettableRepeatedModule"
	case StatusImplementedInSupertype:
		return "implementedInSupertype"
	default:
		return "unknown"
	}
}

// settableRequirement pairs one settable requirement with its status. The
// settable set can be a superset of what the component strictly requires.
type settableRequirement struct {
	requirement models.ComponentRequirement
	status      RequirementStatus
}
