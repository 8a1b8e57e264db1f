package sdfxml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"
)

// TextKey holds element text when the element also carries attributes.
const TextKey = "#text"

const scriptIDKey = "scriptid"

// Ext is the extension of SDF object files. The match is case-sensitive.
const Ext = ".xml"

var (
	// ErrEmptyDocument is returned when the input has no root element.
	ErrEmptyDocument = errors.New("sdfxml: document has no root element")
	// ErrNoScriptID is returned alongside a parsed Document whose root has
	// no scriptid; the Document is still usable.
	ErrNoScriptID = errors.New("sdfxml: root element has no scriptid")
)

func init() {
	// Merge attributes as plain keys instead of "-name".
	mxj.PrependAttrWithHyphen(false)
	// Objects exported from older accounts may declare ISO-8859-1 or windows-1252.
	mxj.XmlCharsetReader = charset.NewReaderLabel
}

// IsObjectFile reports whether name is an SDF object file.
func IsObjectFile(name string) bool {
	return filepath.Ext(name) == Ext
}

// Document is one parsed SDF object file.
type Document struct {
	Type     string
	ScriptID string
	// Body is {Type: <normalized root>}.
	Body map[string]any
}

// Parse normalizes an SDF XML document.
//
// When the root has no scriptid, Parse returns the document together with
// ErrNoScriptID so the caller can pick a fallback id.
func Parse(b []byte) (Document, error) {
	if len(strings.TrimSpace(string(b))) == 0 {
		return Document{}, ErrEmptyDocument
	}
	m, err := mxj.NewMapXml(b)
	if err != nil {
		return Document{}, fmt.Errorf("sdfxml: %w", err)
	}

	root, ok := rootName(m)
	if !ok {
		return Document{}, ErrEmptyDocument
	}
	doc := Document{
		Type: root,
		Body: map[string]any{root: m[root]},
	}
	doc.ScriptID = scriptID(m[root])
	if doc.ScriptID == "" {
		return doc, ErrNoScriptID
	}
	return doc, nil
}

// ParseFile reads and normalizes the XML file at path.
func ParseFile(path string) (Document, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, nil, err
	}
	doc, err := Parse(b)
	if err != nil && !errors.Is(err, ErrNoScriptID) {
		return doc, b, fmt.Errorf("%s: %w", path, err)
	}
	return doc, b, err
}

// rootName picks the single root element, ignoring directive and comment
// keys mxj may surface.
func rootName(m mxj.Map) (string, bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.HasPrefix(k, "#") {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return keys[0], true
}

func scriptID(root any) string {
	var fields map[string]any
	switch v := root.(type) {
	case map[string]any:
		fields = v
	case mxj.Map:
		fields = v
	default:
		return ""
	}
	return text(fields[scriptIDKey])
}

// text unwraps an attribute or element value down to its string form.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return text(t[TextKey])
	case mxj.Map:
		return text(t[TextKey])
	case []any:
		if len(t) > 0 {
			return text(t[0])
		}
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
	return ""
}
