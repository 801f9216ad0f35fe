package creator

import (
	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

// CreatorImplementation is the immutable artifact produced for one qualifying
// component implementation: the synthesized type declaration, its name, the
// requirements the creator actually provides to the factory call, and the
// mapping from requirement to backing field. It is created once per Create
// invocation and never mutated; the surrounding pipeline merges it into the
// component's emitted compilation unit.
type CreatorImplementation struct {
	spec     *poet.TypeSpec
	name     *poet.TypeName
	provided *models.RequirementSet
	fields   *models.FieldMap
}

var _ models.CreatorArtifact = (*CreatorImplementation)(nil)

// Spec returns the synthesized type declaration
func (c *CreatorImplementation) Spec() *poet.TypeSpec {
	return c.spec
}

// Name returns the creator type's name
func (c *CreatorImplementation) Name() *poet.TypeName {
	return c.name
}

// ProvidedRequirements returns the requirements this creator provides when
// constructing the component: the intersection of its field set and the
// component's required set
func (c *CreatorImplementation) ProvidedRequirements() *models.RequirementSet {
	return c.provided
}

// Fields returns the requirement-to-field mapping. Descendant creators in an
// ahead-of-time chain share this map by reference.
func (c *CreatorImplementation) Fields() *models.FieldMap {
	return c.fields
}
