package app

import (
	"fmt"
	"os"

	"suitedeploy/internal/crypto"
	"suitedeploy/internal/domain"
	"suitedeploy/internal/tree"
)

// App is what the commands work with.
type App struct {
	*Wire
}

func New(w *Wire) *App {
	return &App{Wire: w}
}

// Tree returns the provider for "local" or "server".
func (a *App) Tree(side string) (tree.Provider, string, error) {
	switch side {
	case "", "local":
		return a.LocalTree, "Local objects", nil
	case "server":
		return a.ServerTree, "Server objects", nil
	default:
		return nil, "", fmt.Errorf("unknown tree %q, want local or server", side)
	}
}

// ShowObject returns the cached JSON document of id, or its XML source when
// xml is set.
func (a *App) ShowObject(id domain.ScriptID, xml bool) (string, error) {
	objects, err := a.Local.Objects()
	if err != nil {
		return "", err
	}
	for _, o := range objects {
		if o.ID != id {
			continue
		}
		path := o.JSONFile
		if xml {
			path = o.XMLFile
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("object %s is not in the local index; run \"suitedeploy process\" first", id)
}

// OutputLog returns the contents of the output log.
func (a *App) OutputLog() (string, error) {
	path := a.Paths.OutputLog
	if path == "" {
		return "", fmt.Errorf("output log is disabled (logging.file is empty)")
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read output log: %w", err)
	}
	return string(b), nil
}

// Drift states reported by Checksums.
const (
	ChecksumOK       = "ok"
	ChecksumModified = "modified"
	ChecksumMissing  = "missing"
)

// ChecksumStatus compares an indexed object with its XML file on disk.
type ChecksumStatus struct {
	ID      domain.ScriptID
	Indexed string
	Current string
	State   string
}

// Checksums re-hashes every indexed XML file and reports which ones changed
// since the last process run.
func (a *App) Checksums() ([]ChecksumStatus, error) {
	objects, err := a.Local.Objects()
	if err != nil {
		return nil, err
	}
	out := make([]ChecksumStatus, 0, len(objects))
	for _, o := range objects {
		st := ChecksumStatus{ID: o.ID, Indexed: string(o.Checksum)}
		raw, err := os.ReadFile(o.XMLFile)
		switch {
		case os.IsNotExist(err):
			st.State = ChecksumMissing
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", o.XMLFile, err)
		default:
			st.Current = crypto.Checksum(raw)
			st.State = ChecksumOK
			if st.Current != st.Indexed {
				st.State = ChecksumModified
			}
		}
		out = append(out, st)
	}
	return out, nil
}
