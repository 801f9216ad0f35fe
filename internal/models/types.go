package models

// RequirementKind represents the kind of external input a component needs
type RequirementKind int

const (
	KindModule RequirementKind = iota
	KindDependency
	KindBoundInstance
)

// String returns the manifest spelling of the kind
func (k RequirementKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindDependency:
		return "dependency"
	default:
		return "boundInstance"
	}
}

// IsModule reports whether the kind is a module instance
func (k RequirementKind) IsModule() bool {
	return k == KindModule
}

// NullPolicy is the per-requirement rule for a value that is still unset
// when the factory method runs
type NullPolicy int

const (
	// NullPolicyAllow permits a nil value; no check is emitted
	NullPolicyAllow NullPolicy = iota
	// NullPolicyThrow fails fast with a descriptive error if the value is unset
	NullPolicyThrow
	// NullPolicyNew default-constructs a module instance if none was set
	NullPolicyNew
)

// String returns the manifest spelling of the policy
func (p NullPolicy) String() string {
	switch p {
	case NullPolicyAllow:
		return "allow"
	case NullPolicyThrow:
		return "throw"
	default:
		return "new"
	}
}

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeManifest ErrorType = iota
	ErrorTypeValidation
	ErrorTypeInvariant
	ErrorTypeGeneration
	ErrorTypeFileSystem
)
