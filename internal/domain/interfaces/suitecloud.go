package interfaces

import (
	"context"

	domaintypes "suitedeploy/internal/domain/types"
)

// Runner executes the external command-line tool, one process at a time.
type Runner interface {
	Execute(ctx context.Context, args ...string) (string, error)
	// ExecuteWith runs prepare under the one-process guard before starting
	// the tool.
	ExecuteWith(ctx context.Context, prepare func() error, args ...string) (string, error)
}

// SuiteCloudClient is how we talk to the account, through the CLI.
type SuiteCloudClient interface {
	ListObjects(ctx context.Context) ([]domaintypes.ServerObject, error)
	ImportObjects(ctx context.Context, ids ...domaintypes.ScriptID) (string, error)
	DeployObject(ctx context.Context, id domaintypes.ScriptID) (string, error)
}
