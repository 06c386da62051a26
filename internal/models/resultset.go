package models

import "time"

// ResultSet is the outcome of evaluating a Query
type ResultSet struct {
	Query     *Query    `json:"query"`      // Query that produced the results
	Entries   []*Entry  `json:"entries"`    // Matched entries in traversal order
	TotalSize int64     `json:"total_size"` // Sum of matched entry sizes
	Visited   int       `json:"visited"`    // Entries examined
	Skipped   []string  `json:"skipped"`    // Directories that could not be read
	StartedAt time.Time `json:"started_at"` // When traversal began
	Duration  string    `json:"duration"`   // Wall time of the run
}

// NewResultSet creates an empty ResultSet for q
func NewResultSet(q *Query) *ResultSet {
	return &ResultSet{
		Query:     q,
		Entries:   make([]*Entry, 0),
		Skipped:   make([]string, 0),
		StartedAt: time.Now(),
	}
}

// Add appends a matched entry
func (rs *ResultSet) Add(e *Entry) {
	rs.Entries = append(rs.Entries, e)
	rs.TotalSize += e.Size
}

// Paths returns the matched paths in order
func (rs *ResultSet) Paths() []string {
	paths := make([]string, len(rs.Entries))
	for i, e := range rs.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Count returns the number of matched entries
func (rs *ResultSet) Count() int {
	return len(rs.Entries)
}

// IsEmpty returns true if nothing matched
func (rs *ResultSet) IsEmpty() bool {
	return len(rs.Entries) == 0
}

// Finish records the run duration
func (rs *ResultSet) Finish() {
	rs.Duration = time.Since(rs.StartedAt).String()
}
