// Package types defines every cross-package data structure used by the treepipe CLI.
package types

const (
	// ModeNone selects the direct filesystem walk; no stdin parsing occurs.
	ModeNone = "none"
	// ModeNormal treats each input line as a single filesystem path.
	ModeNormal = "normal"
	// ModeGrep parses each input line as grep output shaped "path:content".
	ModeGrep = "grep"

	modeAliasNormal = "n"
	modeAliasGrep   = "g"

	// ColorNone disables ANSI color in rendered output.
	ColorNone = "none"
	// ColorAlways applies ANSI color to rendered output unconditionally.
	ColorAlways = "always"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// CanonicalMode resolves a mode selector, including shorthand aliases, to its
// canonical value. The second return value reports whether the selector is known.
func CanonicalMode(selector string) (string, bool) {
	switch selector {
	case ModeNone, ModeNormal, ModeGrep:
		return selector, true
	case modeAliasNormal:
		return ModeNormal, true
	case modeAliasGrep:
		return ModeGrep, true
	default:
		return "", false
	}
}

// CanonicalColor resolves a color selector to its canonical value.
// The second return value reports whether the selector is known.
func CanonicalColor(selector string) (string, bool) {
	switch selector {
	case ColorNone, ColorAlways:
		return selector, true
	default:
		return "", false
	}
}

// CanonicalFormat resolves an output format selector to its canonical value.
// The second return value reports whether the selector is known.
func CanonicalFormat(selector string) (string, bool) {
	switch selector {
	case FormatRaw, FormatJSON, FormatXML:
		return selector, true
	default:
		return "", false
	}
}

// PathRecord is the structured representation of one parsed input line.
type PathRecord struct {
	// Segments holds the non-empty path components in root-to-leaf order.
	Segments []string
	// MatchCount is the number of matched lines this record contributes.
	// It is always 1 for grep-mode records and 0 in every other mode.
	MatchCount int
	// Binary marks records produced by "Binary file <path> matches" grep lines.
	Binary bool
}

// TreeNode is one entry of the built tree, named by a single path component.
// A node may simultaneously have children and carry the leaf flag when the
// input contains both a path and a longer path it prefixes.
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	// Leaf reports that some input record terminated exactly at this node.
	Leaf bool
	// MatchTotal accumulates MatchCount across every record resolving to this
	// node. It stays 0 outside grep mode.
	MatchTotal int
	// Binary reports that at least one binary grep record resolved to this node.
	Binary bool
}

// NewTreeNode constructs a tree node with an initialized child map.
func NewTreeNode(name string) *TreeNode {
	return &TreeNode{
		Name:     name,
		Children: make(map[string]*TreeNode),
	}
}

// TreeSummary carries the directory and file totals for the closing summary line.
type TreeSummary struct {
	Directories int `json:"directories" xml:"directories"`
	Files       int `json:"files" xml:"files"`
}
