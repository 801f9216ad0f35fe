// Package manifest loads the resolved binding-graph manifest a strut
// front-end produces. The manifest is the already-computed answer to what
// each component needs; nothing here inspects user source or resolves
// bindings.
package manifest

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/strut-dev/strut/internal/models"
	"github.com/strut-dev/strut/internal/poet"
)

// Manifest is a loaded, link-resolved binding-graph manifest. Components are
// ordered so that every base implementation precedes the implementations
// that inherit from it.
type Manifest struct {
	Module     string
	Output     string
	Components []*models.ComponentImplementation
}

type rawFile struct {
	Module     string         `yaml:"module"`
	Output     string         `yaml:"output"`
	Components []rawComponent `yaml:"components"`
}

type rawComponent struct {
	ID                   string           `yaml:"id"`
	Name                 string           `yaml:"name"`
	Component            string           `yaml:"component"`
	CreatorName          string           `yaml:"creatorName"`
	Package              string           `yaml:"package"`
	Abstract             bool             `yaml:"abstract"`
	Nested               bool             `yaml:"nested"`
	RequiresCreator      bool             `yaml:"requiresCreator"`
	Base                 string           `yaml:"base"`
	Superclass           string           `yaml:"superclass"`
	Creator              *rawCreator      `yaml:"creator"`
	Requirements         []rawRequirement `yaml:"requirements"`
	ExternalRequirements []rawRequirement `yaml:"externalRequirements"`
	OwnedModules         []string         `yaml:"ownedModules"`
}

type rawCreator struct {
	Type          string      `yaml:"type"`
	FactoryMethod string      `yaml:"factoryMethod"`
	Setters       []rawSetter `yaml:"setters"`
}

// rawSetter repeats the requirement fields instead of embedding
// rawRequirement; goccy/go-yaml cannot decode into an inlined unexported
// struct.
type rawSetter struct {
	Kind        string `yaml:"kind"`
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	NullPolicy  string `yaml:"nullPolicy"`
	Constructor string `yaml:"constructor"`
	Method      string `yaml:"method"`
	Fluent      bool   `yaml:"fluent"`
}

func (s rawSetter) requirement() rawRequirement {
	return rawRequirement{
		Kind:        s.Kind,
		Type:        s.Type,
		Name:        s.Name,
		NullPolicy:  s.NullPolicy,
		Constructor: s.Constructor,
	}
}

type rawRequirement struct {
	Kind        string `yaml:"kind"`
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	NullPolicy  string `yaml:"nullPolicy"`
	Constructor string `yaml:"constructor"`
}

// Load reads and resolves a manifest file
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(content)
}

// Parse resolves a manifest from its YAML content
func Parse(content []byte) (*Manifest, error) {
	var raw rawFile
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if len(raw.Components) == 0 {
		return nil, models.NewManifestError("manifest declares no components")
	}

	byID := make(map[uuid.UUID]*models.ComponentImplementation, len(raw.Components))
	impls := make([]*models.ComponentImplementation, 0, len(raw.Components))
	for _, rc := range raw.Components {
		impl, err := buildComponent(rc)
		if err != nil {
			return nil, err
		}
		if _, exists := byID[impl.ID]; exists {
			return nil, models.NewManifestError("duplicate component id %s", impl.ID)
		}
		byID[impl.ID] = impl
		impls = append(impls, impl)
	}

	// Second pass: resolve inheritance links now that every node exists.
	for i, rc := range raw.Components {
		impl := impls[i]
		if rc.Base != "" {
			base, err := lookup(byID, rc.Base, impl.Name.RawName(), "base")
			if err != nil {
				return nil, err
			}
			impl.Base = base
		}
		if rc.Superclass != "" {
			superclass, err := lookup(byID, rc.Superclass, impl.Name.RawName(), "superclass")
			if err != nil {
				return nil, err
			}
			impl.Superclass = superclass
		}
	}

	ordered, err := sortByInheritance(impls)
	if err != nil {
		return nil, err
	}

	return &Manifest{Module: raw.Module, Output: raw.Output, Components: ordered}, nil
}

func buildComponent(rc rawComponent) (*models.ComponentImplementation, error) {
	if rc.Name == "" {
		return nil, models.NewManifestError("component with id %q has no name", rc.ID)
	}
	id, err := uuid.Parse(rc.ID)
	if err != nil {
		return nil, models.NewManifestError("component %s has invalid id %q: %v", rc.Name, rc.ID, err)
	}
	if rc.Component == "" {
		return nil, models.NewManifestError("component %s declares no component type", rc.Name)
	}
	componentType, err := ParseTypeName(rc.Component)
	if err != nil {
		return nil, models.NewManifestError("component %s: %v", rc.Name, err)
	}

	requirements := models.NewRequirementSet()
	for _, rr := range rc.Requirements {
		req, err := buildRequirement(rr, rc.Name)
		if err != nil {
			return nil, err
		}
		if !requirements.Add(req) {
			return nil, models.NewManifestError("component %s declares requirement %s twice", rc.Name, req.Type.RawName())
		}
	}

	external := models.NewRequirementSet()
	for _, rr := range rc.ExternalRequirements {
		req, err := buildRequirement(rr, rc.Name)
		if err != nil {
			return nil, err
		}
		external.Add(req)
	}

	owned := make(map[string]bool, len(rc.OwnedModules))
	for _, moduleType := range rc.OwnedModules {
		name, err := ParseTypeName(moduleType)
		if err != nil {
			return nil, models.NewManifestError("component %s: %v", rc.Name, err)
		}
		owned[name.CanonicalKey()] = true
	}

	descriptor := &models.ComponentDescriptor{
		ComponentType:        componentType,
		RequiresCreator:      rc.RequiresCreator,
		ExternalRequirements: external,
		OwnedModules:         owned,
	}
	if rc.Creator != nil {
		contract, err := buildCreatorDescriptor(*rc.Creator, rc.Name)
		if err != nil {
			return nil, err
		}
		descriptor.Creator = contract
	}

	// The default creator name follows the visibility the synthesis rules
	// will assign: concrete contract-bound creators are unexported, every
	// other flavor is exported.
	creatorName := rc.CreatorName
	if creatorName == "" {
		visibility := poet.Public
		if rc.Creator != nil && !rc.Abstract {
			visibility = poet.Private
		}
		creatorName = visibility.Apply(rc.Name + "Builder")
	}

	return &models.ComponentImplementation{
		ID:           id,
		Name:         poet.Local(rc.Name),
		CreatorName:  poet.Local(creatorName),
		Package:      rc.Package,
		Descriptor:   descriptor,
		Requirements: requirements,
		Abstract:     rc.Abstract,
		Nested:       rc.Nested,
	}, nil
}

func buildCreatorDescriptor(rc rawCreator, component string) (*models.CreatorDescriptor, error) {
	if rc.Type == "" {
		return nil, models.NewManifestError("component %s declares a creator contract without a type", component)
	}
	contractType, err := ParseTypeName(rc.Type)
	if err != nil {
		return nil, models.NewManifestError("component %s: %v", component, err)
	}
	factoryMethod := rc.FactoryMethod
	if factoryMethod == "" {
		factoryMethod = "Build"
	}
	descriptor := models.NewCreatorDescriptor(contractType, factoryMethod)
	for _, rs := range rc.Setters {
		req, err := buildRequirement(rs.requirement(), component)
		if err != nil {
			return nil, err
		}
		method := rs.Method
		if method == "" {
			method = poet.Public.Apply(req.Name)
		}
		descriptor.AddSetter(req, models.SetterSpec{MethodName: method, Fluent: rs.Fluent})
	}
	return descriptor, nil
}

func buildRequirement(rr rawRequirement, component string) (models.ComponentRequirement, error) {
	var req models.ComponentRequirement

	switch rr.Kind {
	case "module":
		req.Kind = models.KindModule
	case "dependency":
		req.Kind = models.KindDependency
	case "boundInstance":
		req.Kind = models.KindBoundInstance
	default:
		return req, models.NewManifestError("component %s: unknown requirement kind %q", component, rr.Kind)
	}

	typeName, err := ParseTypeName(rr.Type)
	if err != nil {
		return req, models.NewManifestError("component %s: %v", component, err)
	}
	req.Type = typeName

	req.Name = rr.Name
	if req.Name == "" {
		req.Name = lowerCamel(typeName.SimpleName())
	}

	switch rr.NullPolicy {
	case "allow":
		req.Policy = models.NullPolicyAllow
	case "throw":
		req.Policy = models.NullPolicyThrow
	case "new":
		req.Policy = models.NullPolicyNew
	case "":
		// The resolver front-end normally spells the policy out; default to
		// lazy construction for modules and fail-fast for everything else.
		if req.Kind.IsModule() {
			req.Policy = models.NullPolicyNew
		} else {
			req.Policy = models.NullPolicyThrow
		}
	default:
		return req, models.NewManifestError("component %s: unknown null policy %q", component, rr.NullPolicy)
	}

	req.Constructor = rr.Constructor
	return req, nil
}

func lookup(byID map[uuid.UUID]*models.ComponentImplementation, ref, component, link string) (*models.ComponentImplementation, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, models.NewManifestError("component %s has invalid %s id %q: %v", component, link, ref, err)
	}
	target, ok := byID[id]
	if !ok {
		return nil, models.NewManifestError("component %s references unknown %s %s", component, link, ref)
	}
	return target, nil
}

// sortByInheritance orders components so base implementations come before
// the implementations that link to them
func sortByInheritance(impls []*models.ComponentImplementation) ([]*models.ComponentImplementation, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[*models.ComponentImplementation]int, len(impls))
	ordered := make([]*models.ComponentImplementation, 0, len(impls))

	var visit func(impl *models.ComponentImplementation) error
	visit = func(impl *models.ComponentImplementation) error {
		switch state[impl] {
		case done:
			return nil
		case visiting:
			return models.NewManifestError("inheritance cycle involving %s", impl.Name.RawName())
		}
		state[impl] = visiting
		for _, parent := range []*models.ComponentImplementation{impl.Base, impl.Superclass} {
			if parent != nil {
				if err := visit(parent); err != nil {
					return err
				}
			}
		}
		state[impl] = done
		ordered = append(ordered, impl)
		return nil
	}

	for _, impl := range impls {
		if err := visit(impl); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

func lowerCamel(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
