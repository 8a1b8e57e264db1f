package suitecloud

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"suitedeploy/internal/domain"
)

// Options holds the fixed arguments of the three command shapes.
type Options struct {
	// DeployFile is where project:deploy expects the manifest.
	DeployFile            string
	ImportType            string // --type, default ALL
	DestinationFolder     string // --destinationfolder, default /Objects
	AccountSpecificValues string // --accountspecificvalues, default ERROR
	Logger                *zap.Logger
}

// Client runs SuiteCloud CLI commands through a domain.Runner.
type Client struct {
	runner domain.Runner
	opts   Options
	log    *zap.Logger
}

// New returns a Client that executes through runner.
func New(runner domain.Runner, opts Options) *Client {
	if opts.ImportType == "" {
		opts.ImportType = "ALL"
	}
	if opts.DestinationFolder == "" {
		opts.DestinationFolder = "/Objects"
	}
	if opts.AccountSpecificValues == "" {
		opts.AccountSpecificValues = "ERROR"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{runner: runner, opts: opts, log: log.Named("suitecloud")}
}

var _ domain.SuiteCloudClient = (*Client)(nil)

// ListObjects runs "object:list" and parses its output.
func (c *Client) ListObjects(ctx context.Context) ([]domain.ServerObject, error) {
	out, err := c.runner.Execute(ctx, "object:list")
	if err != nil {
		return nil, err
	}
	objects, skipped := ParseObjectList(out)
	for _, line := range skipped {
		c.log.Info("suitecloud.ListObjects skipping invalid line", zap.String("line", line))
	}
	c.log.Debug("suitecloud.ListObjects parsed", zap.Int("objects", len(objects)), zap.Int("skipped", len(skipped)))
	return objects, nil
}

// ImportObjects runs "object:import" for ids into the destination folder.
func (c *Client) ImportObjects(ctx context.Context, ids ...domain.ScriptID) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("import objects: no script ids")
	}
	return c.runner.Execute(ctx, ImportArgs(c.opts.ImportType, c.opts.DestinationFolder, ids...)...)
}

// DeployObject writes the deploy manifest for id and runs "project:deploy".
func (c *Client) DeployObject(ctx context.Context, id domain.ScriptID) (string, error) {
	if c.opts.DeployFile == "" {
		return "", fmt.Errorf("deploy %s: deploy file path is not configured", id)
	}
	// The manifest is shared with any deploy in flight, so it is only
	// written once the runner has been acquired.
	writeManifest := func() error {
		if err := WriteDeployFile(c.opts.DeployFile, id); err != nil {
			return fmt.Errorf("deploy %s: %w", id, err)
		}
		c.log.Debug("suitecloud.DeployObject wrote manifest", zap.String("id", id.String()), zap.String("path", c.opts.DeployFile))
		return nil
	}
	return c.runner.ExecuteWith(ctx, writeManifest, "project:deploy", "--accountspecificvalues", c.opts.AccountSpecificValues)
}

// ImportArgs builds the argument list of an object:import invocation.
func ImportArgs(objectType, destination string, ids ...domain.ScriptID) []string {
	args := []string{"object:import", "--type", objectType, "--destinationfolder", destination, "--scriptid"}
	for _, id := range ids {
		args = append(args, id.String())
	}
	return args
}
