package walk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/treepipe/internal/builder"
	"github.com/temirov/treepipe/internal/walk"
)

// createFile writes an empty file, failing the test on error.
func createFile(testingInstance *testing.T, path string) {
	testingInstance.Helper()
	if writeError := os.WriteFile(path, nil, 0o644); writeError != nil {
		testingInstance.Fatalf("write file %s: %v", path, writeError)
	}
}

// TestBuildTreeShape verifies that the walker mirrors the directory layout.
func TestBuildTreeShape(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	if mkdirError := os.MkdirAll(filepath.Join(rootDirectory, "src", "nested"), 0o755); mkdirError != nil {
		testingInstance.Fatalf("mkdir error: %v", mkdirError)
	}
	createFile(testingInstance, filepath.Join(rootDirectory, "README.md"))
	createFile(testingInstance, filepath.Join(rootDirectory, "src", "main.go"))
	createFile(testingInstance, filepath.Join(rootDirectory, "src", "nested", "helper.go"))

	walker := &walk.Walker{}
	rootNode, buildError := walker.BuildTree(rootDirectory)
	if buildError != nil {
		testingInstance.Fatalf("build tree error: %v", buildError)
	}

	if rootNode.Name != builder.RootNodeName {
		testingInstance.Errorf("expected synthetic root name %q, got %q", builder.RootNodeName, rootNode.Name)
	}
	readmeNode := rootNode.Children["README.md"]
	if readmeNode == nil || !readmeNode.Leaf {
		testingInstance.Errorf("expected leaf node README.md, got %+v", readmeNode)
	}
	sourceNode := rootNode.Children["src"]
	if sourceNode == nil || sourceNode.Leaf {
		testingInstance.Fatalf("expected non-leaf directory node src, got %+v", sourceNode)
	}
	if sourceNode.Children["main.go"] == nil || sourceNode.Children["nested"] == nil {
		testingInstance.Fatalf("expected main.go and nested under src, got %+v", sourceNode.Children)
	}
	if sourceNode.Children["nested"].Children["helper.go"] == nil {
		testingInstance.Errorf("expected helper.go under nested")
	}

	summary := builder.Summarize(rootNode)
	if summary.Directories != 3 || summary.Files != 3 {
		testingInstance.Errorf("expected 3 directories and 3 files, got %+v", summary)
	}
}

// TestBuildTreeExcludedNames verifies that excluded entries are skipped entirely.
func TestBuildTreeExcludedNames(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	if mkdirError := os.Mkdir(filepath.Join(rootDirectory, ".git"), 0o755); mkdirError != nil {
		testingInstance.Fatalf("mkdir error: %v", mkdirError)
	}
	createFile(testingInstance, filepath.Join(rootDirectory, ".git", "HEAD"))
	createFile(testingInstance, filepath.Join(rootDirectory, "kept.txt"))

	walker := &walk.Walker{ExcludedNames: []string{".git"}}
	rootNode, buildError := walker.BuildTree(rootDirectory)
	if buildError != nil {
		testingInstance.Fatalf("build tree error: %v", buildError)
	}
	if rootNode.Children[".git"] != nil {
		testingInstance.Errorf("expected .git to be excluded")
	}
	if rootNode.Children["kept.txt"] == nil {
		testingInstance.Errorf("expected kept.txt to survive exclusion")
	}
}

// TestBuildTreeMissingRoot verifies that an unreadable root is an error.
func TestBuildTreeMissingRoot(testingInstance *testing.T) {
	walker := &walk.Walker{}
	missingRoot := filepath.Join(testingInstance.TempDir(), "absent")
	if _, buildError := walker.BuildTree(missingRoot); buildError == nil {
		testingInstance.Errorf("expected an error for a missing root directory")
	}
}
