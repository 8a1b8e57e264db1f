package app

import "io"

// Config holds runtime wiring options for building the app.
type Config struct {
	Workspace  string    // workspace root; empty means SUITEDEPLOY_WORKSPACE or the current directory
	ConfigFile string    // YAML config; empty means <workspace>/.suitedeploy.yaml
	Verbose    bool      // debug logging on the console
	Quiet      bool      // print only errors through the notifier
	Out        io.Writer // notifications; defaults to os.Stdout
	Console    io.Writer // console log; defaults to os.Stderr
}
