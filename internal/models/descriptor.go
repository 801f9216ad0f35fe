package models

import "github.com/strut-dev/strut/internal/poet"

// SetterSpec describes the user-authored setter method a creator contract
// declares for one requirement
type SetterSpec struct {
	MethodName string
	Fluent     bool // non-void contract signature; the setter returns the creator
}

// CreatorDescriptor describes a user-authored creator contract type: the
// requirements it can set, its factory method, and the setter signature
// declared for each requirement.
type CreatorDescriptor struct {
	Type              *poet.TypeName
	FactoryMethodName string
	Settable          *RequirementSet
	setters           map[string]SetterSpec
}

// NewCreatorDescriptor creates a contract descriptor
func NewCreatorDescriptor(contractType *poet.TypeName, factoryMethod string) *CreatorDescriptor {
	return &CreatorDescriptor{
		Type:              contractType,
		FactoryMethodName: factoryMethod,
		Settable:          NewRequirementSet(),
		setters:           make(map[string]SetterSpec),
	}
}

// AddSetter declares a settable requirement with its contract method
func (d *CreatorDescriptor) AddSetter(r ComponentRequirement, s SetterSpec) {
	d.Settable.Add(r)
	d.setters[r.Key()] = s
}

// SetterFor returns the contract setter declared for the requirement
func (d *CreatorDescriptor) SetterFor(r ComponentRequirement) (SetterSpec, bool) {
	s, ok := d.setters[r.Key()]
	return s, ok
}

// ComponentDescriptor describes one component as declared by the user: its
// public type, whether a creator is wanted at all, the optional user-authored
// creator contract, and the sets needed for settable-requirement
// classification.
type ComponentDescriptor struct {
	ComponentType *poet.TypeName
	// RequiresCreator marks a root component that gets a synthesized builder
	// even without a user contract
	RequiresCreator bool
	Creator         *CreatorDescriptor
	// ExternalRequirements holds the component's dependencies and concrete
	// modules, the settable universe for root synthesis
	ExternalRequirements *RequirementSet
	// OwnedModules holds the canonical type keys of module types owned
	// directly by the component (as opposed to inherited from an ancestor)
	OwnedModules map[string]bool
}

// HasCreator reports whether any creator should exist for the component
func (d *ComponentDescriptor) HasCreator() bool {
	return d.Creator != nil || d.RequiresCreator
}

// OwnsModuleType reports whether the requirement's type is a module type
// owned directly by this component
func (d *ComponentDescriptor) OwnsModuleType(r ComponentRequirement) bool {
	return d.OwnedModules[r.Type.CanonicalKey()]
}
