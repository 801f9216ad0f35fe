package creator

import (
	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

// contractShape is the strategy for a creator type defined by a user-authored
// creator contract
type contractShape struct {
	impl      *models.ComponentImplementation
	creator   *models.CreatorDescriptor
	className *poet.TypeName
}

func (s *contractShape) settableRequirements() []settableRequirement {
	settable := make([]settableRequirement, 0, s.creator.Settable.Len())
	for _, req := range s.creator.Settable.Slice() {
		settable = append(settable, settableRequirement{requirement: req, status: s.requirementStatus(req)})
	}
	return settable
}

// requirementStatus classifies one settable requirement. In ahead-of-time
// mode all setter methods are defined at the base implementation; the only
// override a leaf needs is for a repeated module, which is unknown when the
// base is generated, so repeated-module setters are emitted at the leaf.
func (s *contractShape) requirementStatus(req models.ComponentRequirement) RequirementStatus {
	if s.isRepeatedModule(req) {
		return StatusUnsettableRepeatedModule
	}
	if s.hasBaseCreatorImplementation() {
		return StatusImplementedInSupertype
	}
	if s.impl.Requirements.Contains(req) {
		return StatusNeeded
	}
	return StatusUnneeded
}

// isRepeatedModule reports whether the requirement repeats a module inherited
// from an ancestor component. This creator is not allowed to set such a
// module.
func (s *contractShape) isRepeatedModule(req models.ComponentRequirement) bool {
	return !s.impl.Requirements.Contains(req) && !s.impl.Descriptor.OwnsModuleType(req)
}

func (s *contractShape) hasBaseCreatorImplementation() bool {
	return !s.impl.Abstract && s.impl.Base != nil
}

func (s *contractShape) visibility() poet.Visibility {
	if s.impl.Abstract {
		// The creator of a top-level abstract implementation in ahead-of-time
		// mode must be public, not protected: the creator's concrete subclass
		// is generated as a sibling of the component subclass implementation,
		// not nested inside it.
		if s.impl.Nested {
			return poet.Protected
		}
		return poet.Public
	}
	return poet.Private
}

func (s *contractShape) applySupertype(t *poet.TypeSpecBuilder) {
	if s.impl.Base != nil {
		// A base implementation exists, so extend the creator defined there.
		t.Extends(s.impl.Base.CreatorName)
	} else {
		t.Implements(s.creator.Type)
	}
}

func (s *contractShape) applyConstructor(t *poet.TypeSpecBuilder) {
	// The implicit zero value is all a contract-bound creator needs.
}

func (s *contractShape) setterMethodBuilder(req models.ComponentRequirement) (*poet.MethodSpecBuilder, error) {
	setter, ok := s.creator.SetterFor(req)
	if !ok {
		return nil, models.NewInvariantError(s.impl.Name.RawName(), "creator contract %s declares no setter for %s", s.creator.Type.RawName(), req.Type.RawName())
	}
	method := poet.NewMethod(setter.MethodName).Override().Param(req.Name, req.Type)
	if setter.Fluent {
		// The declared return type is computed as the creator's own type
		// whenever the contract signature is non-void, so type-variable
		// returns in the contract never need handling here.
		method.Returns(poet.PointerTo(s.className))
	}
	return method, nil
}

func (s *contractShape) factoryMethodBuilder() *poet.MethodSpecBuilder {
	return poet.NewMethod(s.creator.FactoryMethodName).Override()
}
