package interfaces

import domaintypes "suitedeploy/internal/domain/types"

// LocalIndexStore persists the local object index.
type LocalIndexStore interface {
	Path() string
	SaveLocalIndex(objects []domaintypes.LocalObject) error
	// LoadLocalIndex reports ok=false when no index has been written yet.
	LoadLocalIndex() (objects []domaintypes.LocalObject, ok bool, err error)
}

// ServerIndexStore persists the server object index.
type ServerIndexStore interface {
	Path() string
	SaveServerIndex(objects []domaintypes.ServerObject) error
	LoadServerIndex() (objects []domaintypes.ServerObject, ok bool, err error)
}

// ObjectFileStore writes the per-object JSON documents.
type ObjectFileStore interface {
	Dir() string
	// PathFor returns where the document for the given XML file lives.
	PathFor(xmlFile string) string
	SaveObjectFile(file domaintypes.ObjectFile) error
}
