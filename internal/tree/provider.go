package tree

import (
	"fmt"
	"sort"
	"sync"

	"suitedeploy/internal/crypto"
	"suitedeploy/internal/domain"
)

// LocalSource is what LocalProvider reads from.
type LocalSource interface {
	IndexPath() string
	Objects() ([]domain.LocalObject, error)
}

// ServerSource is what ServerProvider reads from.
type ServerSource interface {
	IndexPath() string
	Objects() ([]domain.ServerObject, error)
}

// subscribers implements Refresh and Subscribe for both providers.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// Subscribe registers fn to run on every Refresh and returns a function that
// removes it.
func (s *subscribers) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

// Refresh tells subscribers the underlying index changed.
func (s *subscribers) Refresh() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// LocalProvider renders the local index.
type LocalProvider struct {
	subscribers
	src LocalSource
}

func NewLocalProvider(src LocalSource) *LocalProvider {
	return &LocalProvider{src: src}
}

var (
	_ Provider    = (*LocalProvider)(nil)
	_ domain.View = (*LocalProvider)(nil)
)

// Children returns the root level when parent is nil and the objects of
// parent's type otherwise.
func (p *LocalProvider) Children(parent *Node) ([]Node, error) {
	objects, err := p.src.Objects()
	if err != nil {
		return nil, fmt.Errorf("local tree: %w", err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	if parent == nil {
		types := make([]domain.ObjectType, len(objects))
		for i, o := range objects {
			types[i] = o.Type
		}
		return rootNodes(p.src.IndexPath(), types), nil
	}
	if parent.Context != ContextObjectType {
		return nil, nil
	}

	var nodes []Node
	for _, o := range objects {
		if string(o.Type) != parent.ID {
			continue
		}
		nodes = append(nodes, localObjectNode(o))
	}
	return nodes, nil
}

func localObjectNode(o domain.LocalObject) Node {
	id := o.ID.String()
	label := id
	tooltip := fmt.Sprintf("%s  (id: %s)", o.Type, id)
	switch {
	case o.IsDeployed():
		tooltip = "(DEPLOYED) " + id
		label = "(D) " + id
	case o.IsUndeployed():
		tooltip = "(Undeployed) " + id
		label = "(Undeployed) " + id
	}
	return Node{
		Label:       label,
		ID:          id,
		Description: crypto.ShortChecksum(string(o.Checksum)),
		Tooltip:     tooltip,
		Context:     ContextLocalObject,
		Command:     Command{Name: CommandOpenFile, Args: []string{o.XMLFile}},
		XMLFile:     o.XMLFile,
		JSONFile:    o.JSONFile,
	}
}

// ServerProvider renders the server index.
type ServerProvider struct {
	subscribers
	src ServerSource
}

func NewServerProvider(src ServerSource) *ServerProvider {
	return &ServerProvider{src: src}
}

var (
	_ Provider    = (*ServerProvider)(nil)
	_ domain.View = (*ServerProvider)(nil)
)

// Children returns the root level when parent is nil and the objects of
// parent's type otherwise.
func (p *ServerProvider) Children(parent *Node) ([]Node, error) {
	objects, err := p.src.Objects()
	if err != nil {
		return nil, fmt.Errorf("server tree: %w", err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	if parent == nil {
		types := make([]domain.ObjectType, len(objects))
		for i, o := range objects {
			types[i] = o.Type
		}
		return rootNodes(p.src.IndexPath(), types), nil
	}
	if parent.Context != ContextObjectType {
		return nil, nil
	}

	var nodes []Node
	for _, o := range objects {
		if string(o.Type) != parent.ID {
			continue
		}
		id := o.ID.String()
		nodes = append(nodes, Node{
			Label:   id,
			ID:      id,
			Tooltip: fmt.Sprintf("%s  (id: %s)", o.Type, id),
			Context: ContextServerObject,
		})
	}
	return nodes, nil
}

// rootNodes is INDEX followed by the distinct types, sorted.
func rootNodes(indexPath string, types []domain.ObjectType) []Node {
	seen := make(map[domain.ObjectType]bool, len(types))
	var distinct []string
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			distinct = append(distinct, string(t))
		}
	}
	sort.Strings(distinct)

	nodes := make([]Node, 0, len(distinct)+1)
	nodes = append(nodes, indexNode(indexPath))
	for _, t := range distinct {
		nodes = append(nodes, typeNode(t))
	}
	return nodes
}
