package results

import (
	"testing"

	"github.com/cheerioskun/findninja/internal/messages"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResultsUpdated(t *testing.T) {
	m := NewModel()
	m.SetSize(80, 20)
	assert.Contains(t, m.View(), "No matching paths")

	m, _ = m.Update(messages.ResultsUpdatedMsg{
		Entries: []*models.Entry{
			{Path: "/data/logs", IsDir: true},
			{Path: "/data/logs/app.log", Size: 2048},
		},
		Scanned:   7,
		TotalSize: 2048,
	})

	view := m.View()
	assert.Len(t, m.Entries(), 2)
	assert.Contains(t, view, "/data/logs/")
	assert.Contains(t, view, "/data/logs/app.log")
	assert.Contains(t, view, "2 of 7 paths")
	assert.Contains(t, view, "2.0 KB")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "3.0 MB", formatBytes(3*1024*1024))
}
