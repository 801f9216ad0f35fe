package cli

// Config carries the command-line configuration for one generator run
type Config struct {
	ManifestPath string // path to the resolved binding-graph manifest
	OutputRoot   string // root directory generated packages are written under
	Module       string // module path override; defaults to the nearest go.mod
	Verbose      bool
	Quiet        bool
}
