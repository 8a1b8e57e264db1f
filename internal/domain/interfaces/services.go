package interfaces

import (
	"context"

	domaintypes "suitedeploy/internal/domain/types"
)

// LocalObjectService scans the SDF objects directory and owns the local
// index.
type LocalObjectService interface {
	IndexPath() string
	// Load fills the in-memory list from the index file.
	Load() error
	Objects() ([]domaintypes.LocalObject, error)
	Record(id domaintypes.ScriptID) (domaintypes.LocalObject, bool)
	Count() int
	ClearObjects()
	InitializeFolders() error
	Reset() error
	CreateObjects(ctx context.Context) (domaintypes.ScanSummary, error)
	CreateIndex(objects []domaintypes.LocalObject) error
	UpdateObjectFields(field domaintypes.Field, values []domaintypes.FieldValue) error
}

// ServerObjectService lists, imports and deploys objects through the
// SuiteCloud CLI and owns the server index.
type ServerObjectService interface {
	IndexPath() string
	Load() error
	Objects() ([]domaintypes.ServerObject, error)
	Record(id domaintypes.ScriptID) (domaintypes.ServerObject, bool)
	Count() int
	ClearObjects()
	InitializeFolders() error
	Reset() error
	Retrieve(ctx context.Context) ([]domaintypes.ServerObject, error)
	Import(ctx context.Context, ids ...domaintypes.ScriptID) error
	Deploy(ctx context.Context, id domaintypes.ScriptID) error
	CreateIndex(objects []domaintypes.ServerObject) error
}
