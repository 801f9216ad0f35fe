package cli

import (
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/strut-dev/strut/internal/creator"
	"github.com/strut-dev/strut/internal/manifest"
	"github.com/strut-dev/strut/internal/poet"
	"github.com/strut-dev/strut/internal/utils"
)

// Generator runs the full pipeline: load the resolved binding-graph
// manifest, synthesize a creator implementation per qualifying component
// implementation, and write one formatted source file per output package.
type Generator struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	factory     *creator.Factory
	renderer    *poet.Renderer
	summary     GenerationSummary
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	ComponentsProcessed int
	CreatorsGenerated   int
	ComponentsSkipped   int
	GeneratedFiles      []string
}

// NewGenerator creates a generator with the given configuration
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		config:      config,
		diagnostics: diagnostics,
		factory:     creator.NewFactory(),
		renderer:    poet.NewRenderer(),
	}
}

// Generate runs the pipeline and writes the generated files
func (g *Generator) Generate() error {
	m, err := manifest.Load(g.config.ManifestPath)
	if err != nil {
		return utils.WrapLoadError("manifest", err)
	}
	g.diagnostics.Verbose("Loaded manifest with %d components", len(m.Components))

	// The module path decides which named types are local to a generated
	// package; without it every type renders fully qualified, which makes a
	// file generated into the component's own package import itself.
	modulePath, err := g.resolveModule(m)
	if err != nil {
		return utils.WrapLoadError("target module", err)
	}
	g.diagnostics.Verbose("Target module: %s", modulePath)

	// Components arrive base-first, so each base's creator exists before the
	// implementations inheriting its fields are processed.
	created := make(map[uuid.UUID]*creator.CreatorImplementation)
	packages := make(map[string][]*poet.TypeSpec)
	var packageOrder []string

	for _, impl := range m.Components {
		g.summary.ComponentsProcessed++
		if impl.Base != nil {
			if baseArtifact, ok := created[impl.Base.ID]; ok {
				impl.BaseCreator = baseArtifact
			}
		}

		artifact, err := g.factory.Create(impl)
		if err != nil {
			return utils.WrapGenerateError("creator for "+impl.Name.RawName(), err)
		}
		if artifact == nil {
			g.summary.ComponentsSkipped++
			g.diagnostics.Verbose("No creator needed for %s", impl.Name.RawName())
			continue
		}

		created[impl.ID] = artifact
		g.summary.CreatorsGenerated++
		g.diagnostics.Progress("Synthesized %s", artifact.Name().RawName())

		if _, seen := packages[impl.Package]; !seen {
			packageOrder = append(packageOrder, impl.Package)
		}
		packages[impl.Package] = append(packages[impl.Package], artifact.Spec())
	}

	outputRoot := g.outputRoot(m)
	for _, pkg := range packageOrder {
		if err := g.writePackageFile(outputRoot, modulePath, pkg, packages[pkg]); err != nil {
			return err
		}
	}
	return nil
}

// GetSummary returns the summary of the last Generate run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

func (g *Generator) resolveModule(m *manifest.Manifest) (string, error) {
	if g.config.Module != "" {
		return g.config.Module, nil
	}
	if m.Module != "" {
		return m.Module, nil
	}
	goMod := utils.NewGoModParser(utils.NewFileReader())
	goModPath, err := goMod.FindGoModFile(g.outputRoot(m))
	if err != nil {
		return "", err
	}
	return goMod.ParseModuleName(goModPath)
}

func (g *Generator) outputRoot(m *manifest.Manifest) string {
	if g.config.OutputRoot != "" {
		return g.config.OutputRoot
	}
	if m.Output != "" {
		return m.Output
	}
	return "."
}

func (g *Generator) writePackageFile(outputRoot, modulePath, pkg string, specs []*poet.TypeSpec) error {
	dir := filepath.Join(outputRoot, pkg)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return utils.WrapWriteError("output directory "+dir, err)
	}

	packageName := filepath.Base(dir)
	packagePath := path.Join(modulePath, filepath.ToSlash(pkg))
	content := g.renderer.RenderFile(packageName, packagePath, specs)
	outputPath := filepath.Join(dir, generatedFileName)

	if err := utils.FormatAndWriteGoFile(outputPath, content); err != nil {
		return utils.WrapWriteError(outputPath, err)
	}

	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outputPath)
	g.diagnostics.Progress("Writing %s", outputPath)
	return nil
}
