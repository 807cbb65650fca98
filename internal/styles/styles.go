// Package styles resolves display colors from LS_COLORS-style configuration lists.
package styles

import (
	"fmt"
	"strings"
)

const (
	// CategoryDirectory keys the style applied to directory names.
	CategoryDirectory = "di"
	// CategoryMatchCount keys the style applied to grep match-count brackets.
	CategoryMatchCount = "count"
	// CategoryBinary keys the style applied to binary match markers.
	CategoryBinary = "bin"

	// defaultMatchCountStyle colors match counts when no list overrides it.
	defaultMatchCountStyle = "01;32"
	// defaultBinaryStyle colors binary markers when no list overrides it.
	defaultBinaryStyle = "01;35"

	entrySeparator      = ":"
	assignmentSeparator = "="
	extensionEntryMark  = "*."

	ansiEscapePrefix = "\033["
	ansiEscapeSuffix = "m"
	ansiReset        = "\033[0m"

	// errorMalformedEntryFormat reports a style list entry without an assignment.
	errorMalformedEntryFormat = "malformed style entry '%s'"
)

// Table holds resolved style codes for file categories and name extensions.
type Table struct {
	categories map[string]string
	extensions map[string]string
}

// NewTable builds a style table from a base list and an override list. Both
// lists follow the LS_COLORS convention: colon-separated "match=code" entries
// where a match starting with "*." keys an extension and anything else keys a
// category. Entries from the override list win per match. Either list may be
// empty. Built-in defaults for the match-count and binary categories apply
// before either list is read.
func NewTable(baseList string, overrideList string) (*Table, error) {
	table := &Table{
		categories: map[string]string{
			CategoryMatchCount: defaultMatchCountStyle,
			CategoryBinary:     defaultBinaryStyle,
		},
		extensions: make(map[string]string),
	}
	for _, list := range []string{baseList, overrideList} {
		if applyError := table.applyList(list); applyError != nil {
			return nil, applyError
		}
	}
	return table, nil
}

// applyList merges one colon-separated style list into the table.
func (table *Table) applyList(list string) error {
	for _, entry := range strings.Split(list, entrySeparator) {
		if entry == "" {
			continue
		}
		match, code, found := strings.Cut(entry, assignmentSeparator)
		if !found || match == "" {
			return fmt.Errorf(errorMalformedEntryFormat, entry)
		}
		if strings.HasPrefix(match, extensionEntryMark) {
			table.extensions[match[1:]] = code
			continue
		}
		table.categories[match] = code
	}
	return nil
}

// CategoryStyle returns the style code for a category, or an empty string when
// the category is unknown.
func (table *Table) CategoryStyle(category string) string {
	if table == nil {
		return ""
	}
	return table.categories[category]
}

// NameStyle returns the style code keyed by the name's extension, or an empty
// string when no extension entry matches.
func (table *Table) NameStyle(name string) string {
	if table == nil {
		return ""
	}
	extensionIndex := strings.LastIndex(name, ".")
	if extensionIndex <= 0 {
		return ""
	}
	return table.extensions[name[extensionIndex:]]
}

// Apply wraps text in the ANSI escape sequence for the style code. Text passes
// through unchanged when the code is empty.
func Apply(styleCode string, text string) string {
	if styleCode == "" {
		return text
	}
	return ansiEscapePrefix + styleCode + ansiEscapeSuffix + text + ansiReset
}
