package suitecloud

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"suitedeploy/internal/domain"
)

// deployManifest marshals to
// <deploy><objects><path>~/Objects/<id>.xml</path></objects></deploy>.
type deployManifest struct {
	XMLName xml.Name `xml:"deploy"`
	Paths   []string `xml:"objects>path"`
}

// DeployManifest returns the deploy.xml content selecting the given objects.
func DeployManifest(ids ...domain.ScriptID) ([]byte, error) {
	m := deployManifest{}
	for _, id := range ids {
		m.Paths = append(m.Paths, "~/Objects/"+id.String()+".xml")
	}
	return xml.Marshal(m)
}

// WriteDeployFile overwrites path with a manifest selecting id.
func WriteDeployFile(path string, id domain.ScriptID) error {
	b, err := DeployManifest(id)
	if err != nil {
		return fmt.Errorf("build deploy manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create deploy manifest directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write deploy manifest: %w", err)
	}
	return nil
}
