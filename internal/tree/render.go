package tree

import (
	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
)

// Styles controls how Render draws a tree.
type Styles struct {
	Root        lipgloss.Style
	Type        lipgloss.Style
	Item        lipgloss.Style
	Description lipgloss.Style
	Enumerator  lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Root:        lipgloss.NewStyle().Bold(true),
		Type:        lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		Item:        lipgloss.NewStyle(),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
		Enumerator:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")).MarginRight(1),
	}
}

// Render draws every node of p under title, expanding all types.
func Render(title string, p Provider, styles Styles) (string, error) {
	roots, err := p.Children(nil)
	if err != nil {
		return "", err
	}

	t := ltree.Root(title).
		RootStyle(styles.Root).
		EnumeratorStyle(styles.Enumerator).
		ItemStyle(styles.Item)
	for i := range roots {
		n := roots[i]
		if !n.Collapsible {
			t.Child(itemText(n, styles))
			continue
		}
		children, err := p.Children(&n)
		if err != nil {
			return "", err
		}
		sub := ltree.Root(styles.Type.Render(n.Label)).
			EnumeratorStyle(styles.Enumerator).
			ItemStyle(styles.Item)
		for _, c := range children {
			sub.Child(itemText(c, styles))
		}
		t.Child(sub)
	}
	return t.String(), nil
}

func itemText(n Node, styles Styles) string {
	if n.Description == "" {
		return n.Label
	}
	return n.Label + " " + styles.Description.Render(n.Description)
}
