package config

import (
	"path/filepath"

	"suitedeploy/internal/store"
)

// Paths is the resolved filesystem layout for one workspace.
type Paths struct {
	Workspace   string // <ws>
	SDFProject  string // <ws>/src
	SDFObjects  string // <ws>/src/Objects
	SuiteDeploy string // <ws>/src/SuiteDeploy
	LocalCache  string // <ws>/src/SuiteDeploy/Objects
	ServerCache string // <ws>/src/SuiteDeploy/SDF_CLI
	DeployFile  string // <ws>/src/deploy.xml
	CLIWorkDir  string // <ws>
	OutputLog   string // <ws>/.suitedeploy/output.log
}

// LocalIndex returns the local index file path.
func (p Paths) LocalIndex() string { return filepath.Join(p.LocalCache, store.IndexFilename) }

// ServerIndex returns the server index file path.
func (p Paths) ServerIndex() string { return filepath.Join(p.ServerCache, store.IndexFilename) }

// ResolvePaths anchors the configured layout at workspace.
func (c *Config) ResolvePaths(workspace string) Paths {
	ws := filepath.Clean(workspace)
	sdf := join(ws, c.Paths.SDFProject)
	suiteDeploy := join(sdf, c.Paths.SuiteDeploy)

	p := Paths{
		Workspace:   ws,
		SDFProject:  sdf,
		SDFObjects:  join(sdf, c.Paths.SDFObjects),
		SuiteDeploy: suiteDeploy,
		LocalCache:  filepath.Join(suiteDeploy, "Objects"),
		ServerCache: filepath.Join(suiteDeploy, "SDF_CLI"),
		DeployFile:  join(sdf, c.Paths.DeployFile),
		CLIWorkDir:  join(ws, c.CLI.WorkDir),
	}
	if c.Logging.File != "" {
		p.OutputLog = join(ws, c.Logging.File)
	}
	return p
}

// join resolves rel against base unless rel is already absolute.
func join(base, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, rel)
}
