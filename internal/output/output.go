// Package output renders built trees in raw, JSON, and XML formats.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/temirov/treepipe/internal/styles"
	"github.com/temirov/treepipe/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// binaryMatchLabel replaces the numeric match count for binary matches.
	binaryMatchLabel = "BIN"

	bracketOpen  = "["
	bracketClose = "] "

	summarySingularDirectory = "directory"
	summaryPluralDirectory   = "directories"
	summarySingularFile      = "file"
	summaryPluralFile        = "files"
	summaryLineFormat        = "%d %s, %d %s"

	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader      = xml.Header
	xmlRootElement = "tree"
)

// StyleResolver supplies style codes for rendered names. A nil resolver
// disables color entirely; the renderer never reads environment state itself.
type StyleResolver interface {
	// CategoryStyle returns the style code for a display category.
	CategoryStyle(category string) string
	// NameStyle returns the style code for a file name, typically by extension.
	NameStyle(name string) string
}

// WriteTreeRaw renders the tree to the writer: the root label line, one line
// per descendant in depth-first order with connector prefixes, then a blank
// line and the summary line. Children at every level are ordered by a strict
// case-sensitive lexicographic sort of their names.
func WriteTreeRaw(writer io.Writer, rootNode *types.TreeNode, summary types.TreeSummary, resolver StyleResolver) {
	if rootNode == nil {
		return
	}
	fmt.Fprintln(writer, applyStyle(resolver, styles.CategoryDirectory, rootNode.Name))
	writeChildren(writer, rootNode, "", resolver)
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, FormatSummaryLine(summary))
}

// writeChildren renders the sorted children of a node, recursing depth-first.
func writeChildren(writer io.Writer, node *types.TreeNode, prefix string, resolver StyleResolver) {
	orderedChildren := sortedChildren(node)
	for childIndex, childNode := range orderedChildren {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if childIndex == len(orderedChildren)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		fmt.Fprintf(writer, "%s%s%s\n", prefix, connector, nodeLabel(childNode, resolver))
		writeChildren(writer, childNode, childPrefix, resolver)
	}
}

// nodeLabel builds the display label for one node: an optional match bracket
// followed by the styled name. Nodes with children take the directory category
// style; everything else is styled by name.
func nodeLabel(node *types.TreeNode, resolver StyleResolver) string {
	label := ""
	if node.Binary {
		label = bracketOpen + applyStyle(resolver, styles.CategoryBinary, binaryMatchLabel) + bracketClose
	} else if node.MatchTotal > 0 {
		countText := fmt.Sprintf("%d", node.MatchTotal)
		label = bracketOpen + applyStyle(resolver, styles.CategoryMatchCount, countText) + bracketClose
	}
	if len(node.Children) > 0 {
		return label + applyStyle(resolver, styles.CategoryDirectory, node.Name)
	}
	if resolver == nil {
		return label + node.Name
	}
	return label + styles.Apply(resolver.NameStyle(node.Name), node.Name)
}

// applyStyle wraps text in the resolver's category style when one is present.
func applyStyle(resolver StyleResolver, category string, text string) string {
	if resolver == nil {
		return text
	}
	return styles.Apply(resolver.CategoryStyle(category), text)
}

// sortedChildren returns the node's children ordered by name. Names are unique
// per parent, so the ordering is total and stable across runs.
func sortedChildren(node *types.TreeNode) []*types.TreeNode {
	childNames := make([]string, 0, len(node.Children))
	for childName := range node.Children {
		childNames = append(childNames, childName)
	}
	sort.Strings(childNames)
	orderedChildren := make([]*types.TreeNode, 0, len(childNames))
	for _, childName := range childNames {
		orderedChildren = append(orderedChildren, node.Children[childName])
	}
	return orderedChildren
}

// FormatSummaryLine formats the trailing summary with correct pluralization.
func FormatSummaryLine(summary types.TreeSummary) string {
	directoryLabel := summaryPluralDirectory
	if summary.Directories == 1 {
		directoryLabel = summarySingularDirectory
	}
	fileLabel := summaryPluralFile
	if summary.Files == 1 {
		fileLabel = summarySingularFile
	}
	return fmt.Sprintf(summaryLineFormat, summary.Directories, directoryLabel, summary.Files, fileLabel)
}

// treeNodeDocument is the marshalable form of a tree node with sorted children.
type treeNodeDocument struct {
	XMLName    xml.Name            `json:"-" xml:"node"`
	Name       string              `json:"name" xml:"name"`
	Leaf       bool                `json:"leaf,omitempty" xml:"leaf,omitempty"`
	MatchTotal int                 `json:"matches,omitempty" xml:"matches,omitempty"`
	Binary     bool                `json:"binary,omitempty" xml:"binary,omitempty"`
	Children   []*treeNodeDocument `json:"children,omitempty" xml:"children>node,omitempty"`
}

// treeDocument wraps the root node and summary for structured output.
type treeDocument struct {
	XMLName xml.Name          `json:"-" xml:"tree"`
	Root    *treeNodeDocument `json:"root" xml:"root>node"`
	Summary types.TreeSummary `json:"summary" xml:"summary"`
}

// buildNodeDocument converts a tree node into its marshalable form.
func buildNodeDocument(node *types.TreeNode) *treeNodeDocument {
	document := &treeNodeDocument{
		Name:       node.Name,
		Leaf:       node.Leaf,
		MatchTotal: node.MatchTotal,
		Binary:     node.Binary,
	}
	for _, childNode := range sortedChildren(node) {
		document.Children = append(document.Children, buildNodeDocument(childNode))
	}
	return document
}

// RenderTreeJSON marshals the tree and its summary as an indented JSON document.
func RenderTreeJSON(rootNode *types.TreeNode, summary types.TreeSummary) (string, error) {
	document := treeDocument{Root: buildNodeDocument(rootNode), Summary: summary}
	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderTreeXML marshals the tree and its summary as an XML document.
func RenderTreeXML(rootNode *types.TreeNode, summary types.TreeSummary) (string, error) {
	document := treeDocument{
		XMLName: xml.Name{Local: xmlRootElement},
		Root:    buildNodeDocument(rootNode),
		Summary: summary,
	}
	encoded, xmlMarshalError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

// RenderTreeRaw renders the raw tree into a string using WriteTreeRaw.
func RenderTreeRaw(rootNode *types.TreeNode, summary types.TreeSummary, resolver StyleResolver) string {
	var buffer bytes.Buffer
	WriteTreeRaw(&buffer, rootNode, summary, resolver)
	return buffer.String()
}
