package importer

import (
	"context"
	"errors"
	"time"

	"github.com/notestack/backend/internal/logging"
)

// DefaultFetchTimeout bounds a bridge call so a hung scripting process
// cannot pin the client in a loading state.
const DefaultFetchTimeout = 10 * time.Second

// Importer obtains note text through a Bridge. Its contract is best-effort:
// every failure (bridge error, missing note, timeout) is logged and reported
// as "no content"; no operation returns an error.
type Importer struct {
	bridge  Bridge
	timeout time.Duration
	now     func() time.Time
}

// New creates an Importer over the given bridge.
func New(bridge Bridge) *Importer {
	return &Importer{
		bridge:  bridge,
		timeout: DefaultFetchTimeout,
		now:     time.Now,
	}
}

// FetchFull returns the whole note body as plain text. The second return is
// false when no content is available.
func (i *Importer) FetchFull(ctx context.Context, name string) (string, bool) {
	body, ok := i.fetch(ctx, name)
	if !ok {
		return "", false
	}
	return StripHTML(body, name), true
}

// FetchTodayOnly returns the note content filed under today's date marker,
// or false when the note is missing or holds nothing for today.
func (i *Importer) FetchTodayOnly(ctx context.Context, name string) (string, bool) {
	body, ok := i.fetch(ctx, name)
	if !ok {
		return "", false
	}
	return TodaySection(StripHTML(body, name), i.now())
}

func (i *Importer) fetch(ctx context.Context, name string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	body, err := i.bridge.FetchNoteBody(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoteNotFound):
			logging.Info("no note matching name", map[string]interface{}{"note": name})
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			logging.Error("note fetch timed out", err, map[string]interface{}{"note": name})
		default:
			logging.Error("note fetch failed", err, map[string]interface{}{"note": name})
		}
		return "", false
	}
	return body, true
}
