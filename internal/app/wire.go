package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"suitedeploy/internal/config"
	"suitedeploy/internal/logging"
	"suitedeploy/internal/services/local"
	"suitedeploy/internal/services/mirror"
	"suitedeploy/internal/services/server"
	"suitedeploy/internal/shell"
	"suitedeploy/internal/store"
	"suitedeploy/internal/suitecloud"
	"suitedeploy/internal/tree"
	"suitedeploy/internal/ui"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config *config.Config
	Paths  config.Paths
	Log    *zap.Logger

	Hub    *ui.Hub
	Status *ui.StatusLine

	Runner *shell.Runner
	Client *suitecloud.Client

	Local  *local.Service
	Server *server.Service
	Mirror *mirror.Service

	LocalTree  *tree.LocalProvider
	ServerTree *tree.ServerProvider

	closeLog func() error
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	ws, err := resolveWorkspace(cfg.Workspace)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(ws); err != nil {
		return nil, err
	}

	configFile := cfg.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(ws, config.DefaultFilename)
	}
	c, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if cfg.Workspace == "" && c.Workspace != "" {
		if ws, err = resolveWorkspace(c.Workspace); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	paths := c.ResolvePaths(ws)

	// Logging
	log, closeLog, err := logging.New(logging.Options{
		Level:   c.Logging.Level,
		Verbose: cfg.Verbose,
		File:    paths.OutputLog,
		JSON:    c.Logging.Format == "json",
	}, cfg.Console)
	if err != nil {
		return nil, err
	}
	log.Debug("workspace resolved", zap.String("workspace", ws), zap.String("config", configFile))

	// Host surfaces
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	status := &ui.StatusLine{}
	hub := ui.NewHub(ui.NewTerminalNotifier(out, ui.DetectStyles(), cfg.Quiet), status)

	// SuiteCloud CLI
	runner := shell.NewRunner(shell.Options{
		Binary:   c.CLI.Binary,
		Dir:      paths.CLIWorkDir,
		Timeout:  c.GetCLITimeout(),
		Logger:   log,
		Notifier: hub,
	})
	client := suitecloud.New(runner, suitecloud.Options{
		DeployFile:            paths.DeployFile,
		ImportType:            c.CLI.ImportType,
		DestinationFolder:     c.CLI.DestinationFolder,
		AccountSpecificValues: c.CLI.AccountSpecificValues,
		Logger:                log,
	})

	// File-based stores
	localIndex := store.NewLocalIndexFileStore(paths.LocalCache)
	objectFiles := store.NewObjectFileStore(paths.LocalCache)
	serverIndex := store.NewServerIndexFileStore(paths.ServerCache)

	// Object services, seeded from the index files
	localSvc := local.New(paths.SDFObjects, localIndex, objectFiles, local.Options{
		Workers:  c.GetScanWorkers(),
		Logger:   log,
		Notifier: hub,
	})
	serverSvc := server.New(client, serverIndex, log)
	if err := localSvc.Load(); err != nil {
		log.Warn("local index could not be loaded", zap.Error(err))
	}
	if err := serverSvc.Load(); err != nil {
		log.Warn("server index could not be loaded", zap.Error(err))
	}

	localTree := tree.NewLocalProvider(localSvc)
	serverTree := tree.NewServerProvider(serverSvc)

	mirrorSvc := mirror.New(localSvc, serverSvc, mirror.Options{
		SuiteDeployDir: paths.SuiteDeploy,
		Logger:         log,
		Notifier:       hub,
		StatusBar:      hub,
		LocalView:      localTree,
		ServerView:     serverTree,
	})
	status.SetText(mirrorSvc.StatusText())

	return &Wire{
		Config:     c,
		Paths:      paths,
		Log:        log,
		Hub:        hub,
		Status:     status,
		Runner:     runner,
		Client:     client,
		Local:      localSvc,
		Server:     serverSvc,
		Mirror:     mirrorSvc,
		LocalTree:  localTree,
		ServerTree: serverTree,
		closeLog:   closeLog,
	}, nil
}

// Close flushes and closes the output log.
func (w *Wire) Close() error {
	if w.closeLog == nil {
		return nil
	}
	return w.closeLog()
}

func resolveWorkspace(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv("SUITEDEPLOY_WORKSPACE")
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("workspace %s does not exist", abs)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", abs)
	}
	return abs, nil
}
