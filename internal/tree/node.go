package tree

// Context values attached to nodes, used to decide which actions apply.
const (
	ContextIndex        = "index"
	ContextObjectType   = "objType"
	ContextLocalObject  = "object"
	ContextServerObject = "obj"
)

// Command names a node's default action.
const (
	CommandOpenFile = "open"
	CommandShowJSON = "show-json"
)

// IndexID is the id of the INDEX node.
const IndexID = "index"

// Command is the action triggered when a node is selected.
type Command struct {
	Name string
	Args []string
}

// Node is one row of a tree view.
type Node struct {
	Label string
	ID    string
	// Description is secondary text drawn dimmed after the label; local
	// objects carry their short checksum here.
	Description string
	Tooltip     string
	Context     string
	Collapsible bool
	Command     Command
	XMLFile     string
	JSONFile    string
}

// Provider supplies the nodes below parent; a nil parent asks for the root
// level.
type Provider interface {
	Children(parent *Node) ([]Node, error)
}

func indexNode(indexPath string) Node {
	return Node{
		Label:    "INDEX",
		ID:       IndexID,
		Tooltip:  "Main index.",
		Context:  ContextIndex,
		Command:  Command{Name: CommandOpenFile, Args: []string{indexPath}},
		JSONFile: indexPath,
	}
}

func typeNode(objectType string) Node {
	return Node{
		Label:       objectType,
		ID:          objectType,
		Tooltip:     objectType,
		Context:     ContextObjectType,
		Collapsible: true,
		Command:     Command{Name: CommandShowJSON},
	}
}
