package creator

import (
	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

// rootShape is the strategy for a builder type synthesized from scratch for a
// root component that has no user-authored creator contract. Repeated-module
// and implemented-in-supertype statuses never arise here: there is no
// contract to inherit setters from and no ancestor to own a module.
type rootShape struct {
	impl        *models.ComponentImplementation
	className   *poet.TypeName
	methodNames *poet.UniqueNameSet
}

func newRootShape(impl *models.ComponentImplementation) *rootShape {
	return &rootShape{
		impl:        impl,
		className:   impl.CreatorName,
		methodNames: poet.NewUniqueNameSet(),
	}
}

func (s *rootShape) settableRequirements() []settableRequirement {
	external := s.impl.Descriptor.ExternalRequirements
	settable := make([]settableRequirement, 0, external.Len())
	for _, req := range external.Slice() {
		status := StatusUnneeded
		if s.impl.Requirements.Contains(req) {
			status = StatusNeeded
		}
		settable = append(settable, settableRequirement{requirement: req, status: status})
	}
	return settable
}

func (s *rootShape) visibility() poet.Visibility {
	return poet.Public
}

func (s *rootShape) applySupertype(t *poet.TypeSpecBuilder) {
	// A synthesized root builder never has a supertype.
}

func (s *rootShape) applyConstructor(t *poet.TypeSpecBuilder) {
	// A private no-argument constructor, so the builder is only reachable
	// through the generated entry point.
	t.SetConstructor(poet.NewMethod("").SetVisibility(poet.Private).Build())
}

// setterMethodBuilder derives the setter from the requirement's simple type
// name. Simple names are not unique across packages and their lowercased form
// can collide with a Go keyword, so the method name goes through the
// creator-scoped name set and the parameter through keyword escaping.
func (s *rootShape) setterMethodBuilder(req models.ComponentRequirement) (*poet.MethodSpecBuilder, error) {
	name := req.Type.SimpleName()
	return poet.NewMethod(s.methodNames.GetUniqueName(poet.Public.Apply(name))).
		Param(poet.SafeIdentifier(poet.Private.Apply(name)), req.Type).
		Returns(poet.PointerTo(s.className)), nil
}

func (s *rootShape) factoryMethodBuilder() *poet.MethodSpecBuilder {
	return poet.NewMethod("Build")
}
