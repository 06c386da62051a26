package models

import (
	"os"
	"time"
)

// Entry is a single filesystem entry produced by traversal
type Entry struct {
	Path    string    `json:"path"`     // Full path as produced by traversal, never cleaned
	Name    string    `json:"name"`     // Final path component
	Depth   int       `json:"depth"`    // 0 for the starting point
	IsDir   bool      `json:"is_dir"`   // Directory entry
	Size    int64     `json:"size"`     // Size in bytes
	ModTime time.Time `json:"mod_time"` // Modification time
}

// NewEntry builds an Entry from stat information
func NewEntry(path string, depth int, info os.FileInfo) *Entry {
	e := &Entry{
		Path:  path,
		Depth: depth,
	}
	if info != nil {
		e.Name = info.Name()
		e.IsDir = info.IsDir()
		e.Size = info.Size()
		e.ModTime = info.ModTime()
	}
	return e
}
