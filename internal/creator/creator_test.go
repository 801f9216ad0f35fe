package creator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

func moduleReq(name, typeName string, policy models.NullPolicy) models.ComponentRequirement {
	return models.ComponentRequirement{
		Kind:   models.KindModule,
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/modules", typeName)),
		Name:   name,
		Policy: policy,
	}
}

func dependencyReq(name, typeName string, policy models.NullPolicy) models.ComponentRequirement {
	return models.ComponentRequirement{
		Kind:   models.KindDependency,
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/deps", typeName)),
		Name:   name,
		Policy: policy,
	}
}

func boundReq(name, typeName string, policy models.NullPolicy) models.ComponentRequirement {
	return models.ComponentRequirement{
		Kind:   models.KindBoundInstance,
		Type:   poet.Named("github.com/acme/app/deps", typeName),
		Name:   name,
		Policy: policy,
	}
}

func newImpl(name string, requirements ...models.ComponentRequirement) *models.ComponentImplementation {
	return &models.ComponentImplementation{
		ID:          uuid.New(),
		Name:        poet.Local(name + "Impl"),
		CreatorName: poet.Local(name + "Builder"),
		Descriptor: &models.ComponentDescriptor{
			ComponentType:        poet.Named("github.com/acme/app/di", name),
			ExternalRequirements: models.NewRequirementSet(),
			OwnedModules:         map[string]bool{},
		},
		Requirements: models.NewRequirementSet(requirements...),
	}
}

// rootImpl marks the implementation as a root component that gets a
// synthesized builder without a user contract
func rootImpl(name string, requirements ...models.ComponentRequirement) *models.ComponentImplementation {
	impl := newImpl(name, requirements...)
	impl.Descriptor.RequiresCreator = true
	impl.Descriptor.ExternalRequirements = models.NewRequirementSet(requirements...)
	return impl
}

// contractImpl attaches a user-authored creator contract declaring a fluent
// setter per settable requirement
func contractImpl(name string, settable ...models.ComponentRequirement) *models.ComponentImplementation {
	impl := newImpl(name)
	contract := models.NewCreatorDescriptor(poet.Named("github.com/acme/app/di", name+"Creator"), "Build")
	for _, req := range settable {
		contract.AddSetter(req, models.SetterSpec{MethodName: "Set" + poet.Public.Apply(req.Name), Fluent: true})
	}
	impl.Descriptor.Creator = contract
	return impl
}

func TestCreate_NoCreatorNeeded(t *testing.T) {
	impl := newImpl("AppComponent")

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)
	assert.Nil(t, artifact, "components without a creator contract produce no artifact")
}

func TestCreate_AbstractIntermediateSkipped(t *testing.T) {
	base := rootImpl("BaseComponent")
	impl := contractImpl("MidComponent")
	impl.Abstract = true
	impl.Superclass = base
	impl.Base = base

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)
	assert.Nil(t, artifact, "abstract intermediates with a superclass inherit the whole creator")
}

func TestCreate_AbstractRootStillGenerates(t *testing.T) {
	impl := contractImpl("BaseComponent", moduleReq("apiModule", "APIModule", models.NullPolicyNew))
	impl.Requirements = models.NewRequirementSet(moduleReq("apiModule", "APIModule", models.NullPolicyNew))
	impl.Abstract = true

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)
	require.NotNil(t, artifact, "an abstract implementation without a superclass owns the creator")
	_, hasFactory := artifact.Spec().MethodByName("Build")
	assert.False(t, hasFactory, "abstract creators never get a factory method")
}

func TestCreate_RootSynthesizedShape(t *testing.T) {
	apiModule := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	backend := dependencyReq("backend", "Backend", models.NullPolicyThrow)
	impl := rootImpl("AppComponent", apiModule, backend)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	spec := artifact.Spec()
	assert.Equal(t, poet.Public, spec.Visibility)
	assert.Nil(t, spec.Extends, "a synthesized root builder never has a supertype")
	assert.Nil(t, spec.Implements)
	require.NotNil(t, spec.Constructor, "root builders get a private no-arg constructor")
	assert.Equal(t, poet.Private, spec.Constructor.Visibility)
	assert.Empty(t, spec.Constructor.Params)

	setter, ok := spec.MethodByName("APIModule")
	require.True(t, ok, "setter is named after the requirement's type")
	assert.False(t, setter.Override)
	require.NotNil(t, setter.Returns, "root setters are always fluent")
	assert.Equal(t, "*AppComponentBuilder", setter.Returns.String())
	assert.Equal(t, "return c", setter.Statements[len(setter.Statements)-1])

	factory, ok := spec.MethodByName("Build")
	require.True(t, ok)
	assert.False(t, factory.Override)
	assert.Equal(t, poet.Public, factory.Visibility)
	assert.Equal(t, "di.AppComponent", factory.Returns.String())
}

func TestCreate_ContractBoundShape(t *testing.T) {
	apiModule := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	impl := contractImpl("AppComponent", apiModule)
	impl.Requirements = models.NewRequirementSet(apiModule)
	impl.Descriptor.OwnedModules[apiModule.Type.CanonicalKey()] = true

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	spec := artifact.Spec()
	assert.Equal(t, poet.Private, spec.Visibility, "concrete contract-bound creators are private")
	assert.Nil(t, spec.Extends)
	require.NotNil(t, spec.Implements, "without a base, the creator implements the user contract")
	assert.Equal(t, "di.AppComponentCreator", spec.Implements.String())
	assert.Nil(t, spec.Constructor, "contract-bound creators rely on the implicit constructor")

	setter, ok := spec.MethodByName("SetApiModule")
	require.True(t, ok)
	assert.True(t, setter.Override, "contract setters override the contract method")

	factory, ok := spec.MethodByName("Build")
	require.True(t, ok, "factory method is named after the contract's factory method")
	assert.True(t, factory.Override)
}

func TestVisibility_RuleTable(t *testing.T) {
	tests := []struct {
		name     string
		abstract bool
		nested   bool
		expected poet.Visibility
	}{
		{"abstract top-level is public", true, false, poet.Public},
		{"abstract nested is protected", true, true, poet.Protected},
		{"concrete is private", false, false, poet.Private},
		{"concrete nested is private", false, true, poet.Private},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impl := contractImpl("AppComponent")
			impl.Abstract = tt.abstract
			impl.Nested = tt.nested
			shape := &contractShape{impl: impl, creator: impl.Descriptor.Creator, className: impl.CreatorName}
			assert.Equal(t, tt.expected, shape.visibility())
		})
	}
}

func TestRequirementStatus_ContractClassification(t *testing.T) {
	required := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	ownedUnused := moduleReq("logModule", "LogModule", models.NullPolicyNew)
	repeated := moduleReq("dbModule", "DBModule", models.NullPolicyNew)

	impl := contractImpl("ChildComponent", required, ownedUnused, repeated)
	impl.Requirements = models.NewRequirementSet(required)
	impl.Descriptor.OwnedModules[required.Type.CanonicalKey()] = true
	impl.Descriptor.OwnedModules[ownedUnused.Type.CanonicalKey()] = true
	// repeated is neither required nor owned: it belongs to an ancestor.

	shape := &contractShape{impl: impl, creator: impl.Descriptor.Creator, className: impl.CreatorName}
	assert.Equal(t, StatusNeeded, shape.requirementStatus(required))
	assert.Equal(t, StatusUnneeded, shape.requirementStatus(ownedUnused))
	assert.Equal(t, StatusUnsettableRepeatedModule, shape.requirementStatus(repeated))
}

func TestRequirementStatus_ImplementedInSupertype(t *testing.T) {
	required := moduleReq("apiModule", "APIModule", models.NullPolicyNew)

	base := contractImpl("BaseComponent", required)
	base.Requirements = models.NewRequirementSet(required)
	base.Abstract = true

	leaf := contractImpl("LeafComponent", required)
	leaf.Requirements = models.NewRequirementSet(required)
	leaf.Descriptor.OwnedModules[required.Type.CanonicalKey()] = true
	leaf.Base = base

	shape := &contractShape{impl: leaf, creator: leaf.Descriptor.Creator, className: leaf.CreatorName}
	assert.Equal(t, StatusImplementedInSupertype, shape.requirementStatus(required))
}

func TestRootShape_OnlyNeededAndUnneededStatuses(t *testing.T) {
	used := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	unused := moduleReq("logModule", "LogModule", models.NullPolicyNew)

	impl := rootImpl("AppComponent", used, unused)
	impl.Requirements = models.NewRequirementSet(used)

	shape := newRootShape(impl)
	for _, settable := range shape.settableRequirements() {
		assert.Contains(t, []RequirementStatus{StatusNeeded, StatusUnneeded}, settable.status)
	}
}

func TestSetter_NeededAssignsField(t *testing.T) {
	backend := dependencyReq("backend", "Backend", models.NullPolicyThrow)
	impl := rootImpl("AppComponent", backend)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("Backend")
	require.True(t, ok)
	require.Len(t, setter.Statements, 2)
	assert.Equal(t, "c.backend = strut.MustNotBeNil(backend)", setter.Statements[0])
	assert.Equal(t, "return c", setter.Statements[1])
	assert.Contains(t, setter.Imports, "github.com/strut-dev/strut/pkg/strut", "the nil check records its runtime dependency")
}

func TestSetter_AllowSkipsNilCheck(t *testing.T) {
	analytics := boundReq("analytics", "Analytics", models.NullPolicyAllow)
	impl := rootImpl("AppComponent", analytics)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("Analytics")
	require.True(t, ok)
	assert.Equal(t, "c.analytics = analytics", setter.Statements[0])
	assert.Empty(t, setter.Imports, "no check means no runtime dependency")
}

func TestSetter_UnneededIsDeprecatedNoop(t *testing.T) {
	used := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	unused := moduleReq("logModule", "LogModule", models.NullPolicyNew)
	impl := rootImpl("AppComponent", used, unused)
	impl.Requirements = models.NewRequirementSet(used)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("LogModule")
	require.True(t, ok)
	assert.NotEmpty(t, setter.Deprecation, "unneeded setters are marked deprecated")
	for _, statement := range setter.Statements {
		assert.NotContains(t, statement, "c.logModule =", "no-op setters never write a field")
	}
	assert.Equal(t, "strut.MustNotBeNil(logModule)", setter.Statements[0], "parameter is still checked for fail-fast consistency")
}

func TestSetter_RepeatedModuleAlwaysFails(t *testing.T) {
	repeated := moduleReq("dbModule", "DBModule", models.NullPolicyNew)
	impl := contractImpl("ChildComponent", repeated)
	// Not required and not owned: inherited from the enclosing component.

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("SetDbModule")
	require.True(t, ok)
	require.Len(t, setter.Statements, 1)
	assert.Equal(t, `panic(strut.RepeatedModule("modules.DBModule"))`, setter.Statements[0])
}

func TestSetter_ImplementedInSupertypeOmitted(t *testing.T) {
	required := moduleReq("apiModule", "APIModule", models.NullPolicyNew)

	base := contractImpl("BaseComponent", required)
	base.Requirements = models.NewRequirementSet(required)
	base.Abstract = true

	baseArtifact, err := NewFactory().Create(base)
	require.NoError(t, err)
	require.NotNil(t, baseArtifact)

	leaf := contractImpl("LeafComponent", required)
	leaf.Requirements = models.NewRequirementSet(required)
	leaf.Descriptor.OwnedModules[required.Type.CanonicalKey()] = true
	leaf.Base = base
	leaf.BaseCreator = baseArtifact

	leafArtifact, err := NewFactory().Create(leaf)
	require.NoError(t, err)
	require.NotNil(t, leafArtifact)

	_, hasSetter := leafArtifact.Spec().MethodByName("SetApiModule")
	assert.False(t, hasSetter, "setters already implemented on the base creator are not re-emitted")
}

func TestFieldPlan_BaseCreatorFieldsReusedByReference(t *testing.T) {
	required := moduleReq("apiModule", "APIModule", models.NullPolicyNew)

	base := contractImpl("BaseComponent", required)
	base.Requirements = models.NewRequirementSet(required)
	base.Abstract = true

	baseArtifact, err := NewFactory().Create(base)
	require.NoError(t, err)

	leaf := contractImpl("LeafComponent", required)
	leaf.Requirements = models.NewRequirementSet(required)
	leaf.Descriptor.OwnedModules[required.Type.CanonicalKey()] = true
	leaf.Base = base
	leaf.BaseCreator = baseArtifact

	leafArtifact, err := NewFactory().Create(leaf)
	require.NoError(t, err)

	assert.Same(t, baseArtifact.Fields(), leafArtifact.Fields(), "descendants share the base field map by reference")
	assert.Empty(t, leafArtifact.Spec().Fields, "no fields are re-declared down the chain")
	require.NotNil(t, leafArtifact.Spec().Extends)
	assert.Equal(t, "BaseComponentBuilder", leafArtifact.Spec().Extends.String())
}

func TestFieldPlan_AbstractOwnerUsesProtectedFields(t *testing.T) {
	required := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	impl := contractImpl("BaseComponent", required)
	impl.Requirements = models.NewRequirementSet(required)
	impl.Abstract = true

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	field, ok := artifact.Fields().Get(required)
	require.True(t, ok)
	assert.Equal(t, poet.Protected, field.Visibility)
	assert.Equal(t, "ApiModule", field.Name, "protected fields are exported so the chain can reach them")
}

func TestFieldPlan_CollidingNamesStayUnique(t *testing.T) {
	first := models.ComponentRequirement{
		Kind: models.KindModule, Name: "config",
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/http", "Config")),
		Policy: models.NullPolicyNew,
	}
	second := models.ComponentRequirement{
		Kind: models.KindModule, Name: "config",
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/grpc", "Config")),
		Policy: models.NullPolicyNew,
	}
	impl := rootImpl("AppComponent", first, second)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	firstField, ok := artifact.Fields().Get(first)
	require.True(t, ok)
	secondField, ok := artifact.Fields().Get(second)
	require.True(t, ok)
	assert.NotEqual(t, firstField.Name, secondField.Name)
	assert.Equal(t, "config", firstField.Name)
	assert.Equal(t, "config2", secondField.Name)
}

func TestRootSetter_KeywordAndDuplicateTypeNames(t *testing.T) {
	first := models.ComponentRequirement{
		Kind: models.KindDependency, Name: "first",
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/alpha", "Type")),
		Policy: models.NullPolicyThrow,
	}
	second := models.ComponentRequirement{
		Kind: models.KindDependency, Name: "second",
		Type:   poet.PointerTo(poet.Named("github.com/acme/app/beta", "Type")),
		Policy: models.NullPolicyThrow,
	}
	impl := rootImpl("AppComponent", first, second)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("Type")
	require.True(t, ok)
	require.Len(t, setter.Params, 1)
	assert.Equal(t, "type_", setter.Params[0].Name, "lowercased simple names colliding with keywords are escaped")
	assert.Equal(t, "c.first = strut.MustNotBeNil(type_)", setter.Statements[0])

	duplicate, ok := artifact.Spec().MethodByName("Type2")
	require.True(t, ok, "a second requirement with the same simple name gets a suffixed method")
	assert.Equal(t, "c.second = strut.MustNotBeNil(type_)", duplicate.Statements[0])
}

func TestProvidedRequirements_IsFieldRequirementIntersection(t *testing.T) {
	used := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	unused := moduleReq("logModule", "LogModule", models.NullPolicyNew)
	impl := rootImpl("AppComponent", used, unused)
	impl.Requirements = models.NewRequirementSet(used)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	provided := artifact.ProvidedRequirements()
	assert.Equal(t, 1, provided.Len())
	assert.True(t, provided.Contains(used))
	assert.False(t, provided.Contains(unused))

	// Recomputing from another Create call yields the same set.
	again, err := NewFactory().Create(impl)
	require.NoError(t, err)
	assert.Equal(t, provided.Keys(), again.ProvidedRequirements().Keys())
}

func TestFactoryMethod_NullPolicyHandling(t *testing.T) {
	a := dependencyReq("backend", "Backend", models.NullPolicyThrow)
	b := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	c := boundReq("analytics", "Analytics", models.NullPolicyAllow)
	impl := rootImpl("AppComponent", a, b, c)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	factory, ok := artifact.Spec().MethodByName("Build")
	require.True(t, ok)
	body := strings.Join(factory.Statements, "\n")

	assert.Contains(t, body, `strut.CheckBuilderRequirement(c.backend, "deps.Backend")`)
	assert.Contains(t, body, "if c.apiModule == nil {")
	assert.Contains(t, body, "c.apiModule = &modules.APIModule{}")
	assert.NotContains(t, body, "c.analytics =", "allow-policy requirements get no check and no default")
	assert.NotContains(t, body, "CheckBuilderRequirement(c.analytics")

	assert.Equal(t, "return newAppComponentImpl(c.backend, c.apiModule, c.analytics)", factory.Statements[len(factory.Statements)-1],
		"constructor receives exactly the provided fields in declared order")
}

func TestFactoryMethod_NewPolicyRequiresModuleKind(t *testing.T) {
	broken := dependencyReq("backend", "Backend", models.NullPolicyNew)
	impl := rootImpl("AppComponent", broken)

	_, err := NewFactory().Create(impl)
	require.Error(t, err)

	var genErr *models.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ErrorTypeInvariant, genErr.Type)
}

func TestFactoryMethod_CustomModuleConstructor(t *testing.T) {
	custom := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	custom.Constructor = "modules.NewAPIModule()"
	impl := rootImpl("AppComponent", custom)

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	factory, _ := artifact.Spec().MethodByName("Build")
	assert.Contains(t, strings.Join(factory.Statements, "\n"), "c.apiModule = modules.NewAPIModule()")
}

func TestContractSetter_NonFluentReturnsNothing(t *testing.T) {
	req := moduleReq("apiModule", "APIModule", models.NullPolicyNew)
	impl := contractImpl("AppComponent")
	impl.Descriptor.Creator.AddSetter(req, models.SetterSpec{MethodName: "SetApiModule", Fluent: false})
	impl.Requirements = models.NewRequirementSet(req)
	impl.Descriptor.OwnedModules[req.Type.CanonicalKey()] = true

	artifact, err := NewFactory().Create(impl)
	require.NoError(t, err)

	setter, ok := artifact.Spec().MethodByName("SetApiModule")
	require.True(t, ok)
	assert.Nil(t, setter.Returns)
	assert.NotEqual(t, "return c", setter.Statements[len(setter.Statements)-1])
}
