// Package storagetree holds the static folder hierarchy the storage
// listing is built from. The tree is fixed at process start; folders are
// not created or deleted at runtime.
package storagetree

import (
	"github.com/voblako/voblako/internal/model"
)

// FileRef points a folder at a stored file. Preview is an optional static
// hint used when the file itself cannot provide one.
type FileRef struct {
	FileID  string
	Preview string
}

// Node is one folder. Child identifiers are unique among siblings.
type Node struct {
	ID      string
	Label   string
	Folders []*Node
	Files   []FileRef
}

// Tree resolves slash-delimited paths against a root node.
type Tree struct {
	root *Node
}

func New(root *Node) *Tree {
	return &Tree{root: root}
}

// Resolve walks the segments from the root, matching child folders by
// exact identifier. Any unmatched segment fails the whole resolution; the
// empty path resolves to the root. Breadcrumbs run from the root to the
// terminal node inclusive.
func (t *Tree) Resolve(segments []string) (*Node, []model.Breadcrumb, bool) {
	current := t.root
	breadcrumbs := []model.Breadcrumb{{ID: current.ID, Label: current.Label}}

	for _, segment := range segments {
		var next *Node
		for _, child := range current.Folders {
			if child.ID == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil, nil, false
		}
		current = next
		breadcrumbs = append(breadcrumbs, model.Breadcrumb{ID: current.ID, Label: current.Label})
	}

	return current, breadcrumbs, true
}
