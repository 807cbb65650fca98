// Package walk builds a display tree by traversing the filesystem directly.
// It serves input mode "none", where no stdin parsing occurs, and produces the
// same root node shape the builder does so the renderer stays mode-agnostic.
package walk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/treepipe/internal/builder"
	"github.com/temirov/treepipe/internal/types"
	"github.com/temirov/treepipe/internal/utils"
)

const (
	// warningSkipSubdirFormat is used when a subdirectory cannot be read.
	warningSkipSubdirFormat = "Warning: skipping subdirectory %s due to error: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorReadDirectoryFormat is used when the root directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Walker traverses a directory tree, skipping entries named in ExcludedNames.
type Walker struct {
	ExcludedNames []string
}

// BuildTree walks the directory rooted at rootDirectoryPath and returns a
// tree whose synthetic root carries the builder's root name. Unreadable
// subdirectories are skipped with a warning on stderr; only an unreadable
// root is an error.
func (walker *Walker) BuildTree(rootDirectoryPath string) (*types.TreeNode, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootNode := types.NewTreeNode(builder.RootNodeName)
	if appendError := walker.appendChildren(rootNode, absoluteRootPath); appendError != nil {
		return nil, appendError
	}
	return rootNode, nil
}

// appendChildren reads one directory and attaches a child node per entry,
// recursing into subdirectories.
func (walker *Walker) appendChildren(parentNode *types.TreeNode, directoryPath string) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if utils.ContainsString(walker.ExcludedNames, entryName) {
			continue
		}
		childNode := types.NewTreeNode(entryName)
		parentNode.Children[entryName] = childNode

		if directoryEntry.IsDir() {
			childPath := filepath.Join(directoryPath, entryName)
			if appendError := walker.appendChildren(childNode, childPath); appendError != nil {
				fmt.Fprintf(os.Stderr, warningSkipSubdirFormat, childPath, appendError)
			}
			continue
		}
		childNode.Leaf = true
	}
	return nil
}
