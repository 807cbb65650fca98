// Package parser converts raw input lines into structured path records.
package parser

import (
	"fmt"
	"strings"

	"github.com/temirov/treepipe/internal/types"
)

const (
	// pathSeparator splits paths into segments regardless of platform.
	pathSeparator = "/"
	// grepDelimiter separates the path from the matched content in grep output.
	grepDelimiter = ":"
	// binaryMatchPrefix starts grep lines reporting a binary file match.
	binaryMatchPrefix = "Binary file "
	// binaryMatchSuffix ends grep lines reporting a binary file match.
	binaryMatchSuffix = " matches"

	// rootPathLiteral denotes the implicit root and never produces a record.
	rootPathLiteral = "."

	// singleLineMatchCount is the match contribution of one grep output line.
	singleLineMatchCount = 1

	// errorUnknownModeFormat reports an unrecognized parsing mode selector.
	errorUnknownModeFormat = "unknown input mode '%s'"
	// errorNoInputModeMessage reports a parser request for the walk-only mode.
	errorNoInputModeMessage = "input mode 'none' reads no lines; use the filesystem walker instead"
)

// LineParser turns raw lines into path records according to a fixed mode.
type LineParser struct {
	mode string
}

// NewLineParser validates the mode selector and returns a parser for it.
// Mode "none" is rejected because the parser is bypassed entirely for it.
func NewLineParser(modeSelector string) (*LineParser, error) {
	canonicalMode, known := types.CanonicalMode(modeSelector)
	if !known {
		return nil, fmt.Errorf(errorUnknownModeFormat, modeSelector)
	}
	if canonicalMode == types.ModeNone {
		return nil, fmt.Errorf(errorNoInputModeMessage)
	}
	return &LineParser{mode: canonicalMode}, nil
}

// Mode returns the canonical parsing mode of this parser.
func (lineParser *LineParser) Mode() string {
	return lineParser.mode
}

// ParseLine converts one raw line into a path record. The second return value
// reports whether a record was produced; blank lines and lines that fail the
// active mode's expected shape are skipped, never surfaced as errors.
func (lineParser *LineParser) ParseLine(rawLine string) (types.PathRecord, bool) {
	trimmedLine := strings.TrimSpace(rawLine)
	if trimmedLine == "" {
		return types.PathRecord{}, false
	}

	var pathText string
	var record types.PathRecord

	switch lineParser.mode {
	case types.ModeNormal:
		pathText = trimmedLine
	case types.ModeGrep:
		if isBinaryMatchLine(trimmedLine) {
			pathText = strings.TrimSuffix(strings.TrimPrefix(trimmedLine, binaryMatchPrefix), binaryMatchSuffix)
			record.Binary = true
		} else {
			delimiterIndex := strings.Index(trimmedLine, grepDelimiter)
			if delimiterIndex < 0 {
				return types.PathRecord{}, false
			}
			pathText = trimmedLine[:delimiterIndex]
		}
		record.MatchCount = singleLineMatchCount
	}

	segments := SplitPath(pathText)
	if len(segments) == 0 {
		return types.PathRecord{}, false
	}
	record.Segments = segments
	return record, true
}

// SplitPath breaks a path into its non-empty components. A leading separator
// marks an absolute path and is stripped; duplicate separators collapse; the
// bare root "." yields no components.
func SplitPath(pathText string) []string {
	var segments []string
	for _, segment := range strings.Split(pathText, pathSeparator) {
		if segment == "" || segment == rootPathLiteral {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// isBinaryMatchLine reports whether the line is grep's binary file notice.
func isBinaryMatchLine(line string) bool {
	return strings.HasPrefix(line, binaryMatchPrefix) &&
		strings.HasSuffix(line, binaryMatchSuffix) &&
		len(line) > len(binaryMatchPrefix)+len(binaryMatchSuffix)
}
