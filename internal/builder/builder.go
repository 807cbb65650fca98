// Package builder folds parsed path records into a single rooted tree.
package builder

import (
	"github.com/temirov/treepipe/internal/types"
)

// RootNodeName labels the synthetic root node representing the current directory.
const RootNodeName = "."

// TreeBuilder accumulates path records into a tree, merging shared prefixes.
type TreeBuilder struct {
	root *types.TreeNode
}

// NewTreeBuilder constructs a builder with an empty root node.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{root: types.NewTreeNode(RootNodeName)}
}

// AddRecord descends the record's segments from the root, creating child nodes
// on first visit, and marks the terminal node as a leaf. Match counts
// accumulate on the terminal node, so a path repeated across grep lines ends
// up with the sum of its per-line counts.
func (treeBuilder *TreeBuilder) AddRecord(record types.PathRecord) {
	if len(record.Segments) == 0 {
		return
	}
	cursorNode := treeBuilder.root
	for _, segment := range record.Segments {
		childNode, exists := cursorNode.Children[segment]
		if !exists {
			childNode = types.NewTreeNode(segment)
			cursorNode.Children[segment] = childNode
		}
		cursorNode = childNode
	}
	cursorNode.Leaf = true
	cursorNode.MatchTotal += record.MatchCount
	if record.Binary {
		cursorNode.Binary = true
	}
}

// Root returns the tree built so far. The root exists even before any record
// is added, so empty input still renders the root line.
func (treeBuilder *TreeBuilder) Root() *types.TreeNode {
	return treeBuilder.root
}

// Summarize counts directories and files across the tree. The synthetic root
// always counts as one directory. Every other node with at least one child
// counts as a directory regardless of its leaf flag; a node with no children
// counts as a file.
func Summarize(rootNode *types.TreeNode) types.TreeSummary {
	summary := types.TreeSummary{Directories: 1}
	if rootNode == nil {
		return summary
	}
	var countNode func(node *types.TreeNode)
	countNode = func(node *types.TreeNode) {
		for _, childNode := range node.Children {
			if len(childNode.Children) > 0 {
				summary.Directories++
			} else {
				summary.Files++
			}
			countNode(childNode)
		}
	}
	countNode(rootNode)
	return summary
}
