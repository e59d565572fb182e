package importer

import (
	"context"
	"sync/atomic"

	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/models"
)

// NoteSink is the slice of the note store the coordinator writes imported
// content into.
type NoteSink interface {
	UpsertEntry(dateKey, text string, origin models.Origin) models.DayRecord
}

// Result reports the outcome of a refresh.
type Result struct {
	Content string `json:"content"`
	Found   bool   `json:"found"`
	Stale   bool   `json:"stale"`
}

// Coordinator guards refreshes with a monotonically increasing sequence
// number. When a second refresh is issued before the first resolves, the
// first result is discarded when it lands instead of overwriting newer
// state.
type Coordinator struct {
	imp  *Importer
	sink NoteSink
	seq  atomic.Uint64
}

// NewCoordinator creates a Coordinator writing into sink.
func NewCoordinator(imp *Importer, sink NoteSink) *Coordinator {
	return &Coordinator{imp: imp, sink: sink}
}

// Refresh fetches the configured note and, when content is found and still
// current, records it as today's external entry.
func (c *Coordinator) Refresh(ctx context.Context, settings models.ImportSettings) Result {
	if settings.NoteName == "" {
		return Result{}
	}

	seq := c.seq.Add(1)

	var content string
	var found bool
	if settings.TodayOnly {
		content, found = c.imp.FetchTodayOnly(ctx, settings.NoteName)
	} else {
		content, found = c.imp.FetchFull(ctx, settings.NoteName)
	}

	if c.seq.Load() != seq {
		logging.Info("discarding stale import result", map[string]interface{}{
			"note": settings.NoteName,
			"seq":  seq,
		})
		return Result{Stale: true}
	}

	if found && content != "" {
		c.sink.UpsertEntry(models.DateKey(c.imp.now()), content, models.OriginExternal)
	}
	return Result{Content: content, Found: found}
}
