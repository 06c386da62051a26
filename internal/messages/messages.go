package messages

import (
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/regex"
)

// PatternsChangedMsg is sent when the pattern list, dialect or case setting changes
type PatternsChangedMsg struct {
	Include         []string           // Valid include patterns, in panel order
	Exclude         []string           // Valid exclude patterns, in panel order
	Dialect         regex.RegexDialect // Dialect every pattern was compiled under
	IgnoreCase      bool               // Whether patterns fold case
	Invalid         int                // Patterns left out because they do not compile
	SourceComponent string             // Which component sent this
}

// ResultsUpdatedMsg is sent when the matched entries have been recalculated
type ResultsUpdatedMsg struct {
	Entries   []*models.Entry // Matched entries in traversal order
	Scanned   int             // Entries evaluated
	TotalSize int64           // Total size of matched entries
}
