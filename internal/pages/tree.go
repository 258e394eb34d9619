package pages

import (
	"context"
	"sort"
	"strings"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// PageRef is the payload of a tree node that corresponds to an actual page.
type PageRef struct {
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// TreeNode is one path segment in the page hierarchy. Info is nil for pure
// container segments that no page lives at. The tree is rebuilt per request
// and never persisted.
type TreeNode struct {
	Children map[string]*TreeNode `json:"children,omitempty"`
	Info     *PageRef             `json:"info,omitempty"`
}

// PageTree lists all pages in scope and indexes them into a hierarchy.
func (s *Service) PageTree(ctx context.Context, scope azdo.Scope) (*TreeNode, error) {
	infos, err := s.store.ListPages(ctx, scope)
	if err != nil {
		return nil, err
	}
	return NewTree(infos), nil
}

// NewTree builds the hierarchy from a flat page listing. Each path segment
// becomes a node; a node gets Info only when a page exists at exactly that
// path. Insertion order does not affect the result: ancestors are created on
// demand and reused, so permutations of infos yield structurally equal trees.
func NewTree(infos []azdo.PageInfo) *TreeNode {
	root := &TreeNode{}
	for _, info := range infos {
		node := root
		for _, seg := range splitPath(info.Path) {
			if node.Children == nil {
				node.Children = make(map[string]*TreeNode)
			}
			child, ok := node.Children[seg]
			if !ok {
				child = &TreeNode{}
				node.Children[seg] = child
			}
			node = child
		}
		if node != root {
			node.Info = &PageRef{Path: info.Path, URL: info.URL}
		}
	}
	return root
}

// Walk visits every node depth-first in sorted segment order, calling fn
// with the segment name and node. Deterministic regardless of map order.
func (n *TreeNode) Walk(fn func(segment string, node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(string, *TreeNode, int), depth int) {
	segs := make([]string, 0, len(n.Children))
	for seg := range n.Children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		child := n.Children[seg]
		fn(seg, child, depth)
		child.walk(fn, depth+1)
	}
}

// splitPath yields the non-empty segments of a slash-delimited path.
func splitPath(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
