package creator

import (
	"fmt"
	"strings"

	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

// runtimeImport is the package generated statements call for nil checks and
// repeated-module failures
const runtimeImport = "github.com/strut-dev/strut/pkg/strut"

// Factory synthesizes creator implementations for component implementations.
// It is stateless: Create is a pure function of its input, and the only
// scoped resource is name uniqueness within a single creator's namespace.
type Factory struct{}

// NewFactory creates a new creator factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a new creator implementation for the given component
// implementation, or nil if none is needed. Structural absence is not an
// error; invariant violations are.
func (f *Factory) Create(impl *models.ComponentImplementation) (*CreatorImplementation, error) {
	if !impl.Descriptor.HasCreator() {
		return nil, nil
	}

	if impl.Superclass != nil && impl.Abstract {
		// In ahead-of-time mode the creator is generated with the base
		// implementation, except for the factory method, which has to invoke
		// the constructor of the concrete leaf. Intermediate abstract
		// implementations can't invoke that constructor either and add no
		// extensions to the creator, so they generate nothing.
		return nil, nil
	}

	b := &builder{
		impl:        impl,
		className:   impl.CreatorName,
		typeBuilder: poet.NewType(impl.CreatorName.Name),
	}
	if impl.Descriptor.Creator != nil {
		b.shape = &contractShape{impl: impl, creator: impl.Descriptor.Creator, className: impl.CreatorName}
	} else {
		b.shape = newRootShape(impl)
	}
	return b.build()
}

// shape governs the structural differences between the two creator flavors:
// a creator defined by a user-authored contract versus a builder synthesized
// from scratch for a root component. These two are a closed set; adding a
// third flavor means revisiting the classifier rules as well.
type shape interface {
	// settableRequirements returns every requirement the creator can set,
	// each classified with a RequirementStatus. May be a superset of what the
	// component strictly requires.
	settableRequirements() []settableRequirement

	// visibility returns the access level of the generated creator type
	visibility() poet.Visibility

	// applySupertype wires the supertype being extended or the contract being
	// implemented, if either applies
	applySupertype(t *poet.TypeSpecBuilder)

	// applyConstructor adds a constructor for the creator type, if needed
	applyConstructor(t *poet.TypeSpecBuilder)

	// setterMethodBuilder returns a new setter method builder, with no body
	// attached yet, for the given requirement
	setterMethodBuilder(req models.ComponentRequirement) (*poet.MethodSpecBuilder, error)

	// factoryMethodBuilder returns a builder for the creator's factory method
	factoryMethodBuilder() *poet.MethodSpecBuilder
}

// builder drives the shared synthesis steps for one creator implementation
type builder struct {
	impl        *models.ComponentImplementation
	className   *poet.TypeName
	typeBuilder *poet.TypeSpecBuilder
	shape       shape
	fields      *models.FieldMap
}

func (b *builder) build() (*CreatorImplementation, error) {
	b.applyModifiers()
	b.shape.applySupertype(b.typeBuilder)
	b.fields = b.planFields()
	b.shape.applyConstructor(b.typeBuilder)
	if err := b.addSetterMethods(); err != nil {
		return nil, err
	}
	if err := b.addFactoryMethod(); err != nil {
		return nil, err
	}
	return &CreatorImplementation{
		spec:     b.typeBuilder.Build(),
		name:     b.className,
		provided: b.providedRequirements(),
		fields:   b.fields,
	}, nil
}

// providedRequirements returns the requirements this creator will actually
// provide when constructing the component
func (b *builder) providedRequirements() *models.RequirementSet {
	return b.fields.Requirements().Intersect(b.impl.Requirements)
}

func (b *builder) applyModifiers() {
	b.typeBuilder.SetVisibility(b.shape.visibility())
	b.typeBuilder.SetDoc(fmt.Sprintf("%s collects the external inputs of %s.", b.className.Name, b.impl.Descriptor.ComponentType.RawName()))
	if b.impl.Abstract {
		b.typeBuilder.Abstract()
	}
}

// planFields returns the requirement-to-field mapping for this creator. If a
// base creator implementation exists, its fields are already declared there
// and are reused by reference; otherwise one field per requirement is
// allocated with a collision-free name.
func (b *builder) planFields() *models.FieldMap {
	if b.impl.HasBaseCreator() {
		return b.impl.BaseCreator.Fields()
	}

	// Fields of an abstract creator need to be visible from the concrete
	// creators further down the chain.
	visibility := poet.Private
	if b.impl.Abstract {
		visibility = poet.Protected
	}

	fieldNames := poet.NewUniqueNameSet()
	fields := models.NewFieldMap()
	for _, req := range b.impl.Requirements.Slice() {
		field := poet.FieldSpec{
			Name:       fieldNames.GetUniqueName(visibility.Apply(req.Name)),
			Type:       req.Type,
			Visibility: visibility,
		}
		fields.Put(req, field)
		b.typeBuilder.AddField(field)
	}
	return fields
}

func (b *builder) addSetterMethods() error {
	for _, settable := range b.shape.settableRequirements() {
		method, err := b.setterMethod(settable.requirement, settable.status)
		if err != nil {
			return err
		}
		if method != nil {
			b.typeBuilder.AddMethod(*method)
		}
	}
	return nil
}

// setterMethod creates the setter for one requirement, dispatching on its
// status. Returns nil when no method belongs in this creator.
func (b *builder) setterMethod(req models.ComponentRequirement, status RequirementStatus) (*poet.MethodSpec, error) {
	switch status {
	case StatusNeeded:
		return b.normalSetterMethod(req)
	case StatusUnneeded:
		return b.noopSetterMethod(req)
	case StatusUnsettableRepeatedModule:
		return b.repeatedModuleSetterMethod(req)
	case StatusImplementedInSupertype:
		return nil, nil
	default:
		return nil, models.NewInvariantError(b.impl.Name.RawName(), "unknown requirement status %d for %s", status, req.Type.RawName())
	}
}

func (b *builder) normalSetterMethod(req models.ComponentRequirement) (*poet.MethodSpec, error) {
	method, err := b.shape.setterMethodBuilder(req)
	if err != nil {
		return nil, err
	}
	param, err := method.OnlyParam()
	if err != nil {
		return nil, models.NewInvariantError(b.impl.Name.RawName(), "setter for %s: %v", req.Type.RawName(), err)
	}
	field, ok := b.fields.Get(req)
	if !ok {
		return nil, models.NewInvariantError(b.impl.Name.RawName(), "no backing field for requirement %s", req.Type.RawName())
	}
	if req.Policy == models.NullPolicyAllow {
		method.Statementf("c.%s = %s", field.Name, param.Name)
	} else {
		method.Statementf("c.%s = strut.MustNotBeNil(%s)", field.Name, param.Name)
		method.AddImport(runtimeImport)
	}
	return b.maybeReturnSelf(method), nil
}

func (b *builder) noopSetterMethod(req models.ComponentRequirement) (*poet.MethodSpec, error) {
	method, err := b.shape.setterMethodBuilder(req)
	if err != nil {
		return nil, err
	}
	param, err := method.OnlyParam()
	if err != nil {
		return nil, models.NewInvariantError(b.impl.Name.RawName(), "setter for %s: %v", req.Type.RawName(), err)
	}
	method.Deprecated("This module is declared, but an instance is not used in the component. This method is a no-op.")
	method.Statementf("strut.MustNotBeNil(%s)", param.Name)
	method.AddImport(runtimeImport)
	return b.maybeReturnSelf(method), nil
}

func (b *builder) repeatedModuleSetterMethod(req models.ComponentRequirement) (*poet.MethodSpec, error) {
	method, err := b.shape.setterMethodBuilder(req)
	if err != nil {
		return nil, err
	}
	method.Statementf("panic(strut.RepeatedModule(%q))", req.Type.RawName())
	method.AddImport(runtimeImport)
	spec := method.Build()
	return &spec, nil
}

// maybeReturnSelf finishes a setter body with a fluent return when the
// signature is non-void
func (b *builder) maybeReturnSelf(method *poet.MethodSpecBuilder) *poet.MethodSpec {
	if method.HasReturn() {
		method.Statementf("return c")
	}
	spec := method.Build()
	return &spec
}

// addFactoryMethod emits the method that validates every provided requirement
// per its null policy and constructs the component. Abstract creators never
// get one since they can't invoke the not-yet-existing concrete constructor.
func (b *builder) addFactoryMethod() error {
	if b.impl.Abstract {
		return nil
	}

	method := b.shape.factoryMethodBuilder()
	method.SetVisibility(poet.Public).Returns(b.impl.Descriptor.ComponentType)

	provided := b.providedRequirements()
	for _, req := range provided.Slice() {
		field, ok := b.fields.Get(req)
		if !ok {
			return models.NewInvariantError(b.impl.Name.RawName(), "no backing field for requirement %s", req.Type.RawName())
		}
		switch req.Policy {
		case models.NullPolicyNew:
			if !req.Kind.IsModule() {
				return models.NewInvariantError(b.impl.Name.RawName(), "requirement %s has null policy %q but is not a module", req.Type.RawName(), req.Policy)
			}
			// Defer module instantiation to factory time so explicit setter
			// calls take precedence over the framework default.
			method.Statementf("if c.%s == nil {", field.Name)
			method.Statementf("c.%s = %s", field.Name, req.DefaultConstructorExpr())
			method.Statementf("}")
		case models.NullPolicyThrow:
			method.Statementf("strut.CheckBuilderRequirement(c.%s, %q)", field.Name, field.Type.RawName())
			method.AddImport(runtimeImport)
		case models.NullPolicyAllow:
		}
	}

	method.Statementf("return new%s(%s)", b.impl.Name.SimpleName(), b.componentConstructorArgs(provided))
	b.typeBuilder.AddMethod(method.Build())
	return nil
}

// componentConstructorArgs renders the provided-requirement fields as
// constructor arguments in their declared order
func (b *builder) componentConstructorArgs(provided *models.RequirementSet) string {
	args := make([]string, 0, provided.Len())
	for _, req := range provided.Slice() {
		field, _ := b.fields.Get(req)
		args = append(args, "c."+field.Name)
	}
	return strings.Join(args, ", ")
}
