package models

import (
	"github.com/google/uuid"

	"github.com/strut-dev/strut/internal/poet"
)

// ComponentImplementation represents one generated component class, possibly
// a node in an ahead-of-time inheritance chain. The chain is an explicit
// parent-pointer tree: Base points at the root implementation whose creator
// owns the shared fields, Superclass at the immediate parent. Each
// implementation is processed independently and exactly once.
type ComponentImplementation struct {
	ID   uuid.UUID
	Name *poet.TypeName // the generated component implementation type
	// CreatorName is the name reserved for this implementation's creator type
	CreatorName *poet.TypeName
	Package     string // output package directory, relative to the output root
	Descriptor  *ComponentDescriptor
	// Requirements is the resolved set this implementation actually needs
	Requirements *RequirementSet
	Abstract     bool
	Nested       bool
	Base         *ComponentImplementation
	Superclass   *ComponentImplementation
	// BaseCreator is the creator implementation already generated for Base,
	// threaded in by the pipeline before this implementation is processed
	BaseCreator CreatorArtifact
}

// HasBaseCreator reports whether an ancestor's creator already carries the
// field set this implementation would otherwise declare
func (c *ComponentImplementation) HasBaseCreator() bool {
	return c.BaseCreator != nil
}
