// Package export hands note content to the file export collaborator: each
// exported file is appended to a durable list of bridge records.
package export

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yuin/goldmark"

	apperrors "github.com/notestack/backend/internal/errors"
	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/models"
)

// StorageKey holds the exported file records.
const StorageKey = "exported_files"

// Format selects the on-disk representation of an exported note.
type Format string

const (
	// FormatMarkdown stores the note text verbatim.
	FormatMarkdown Format = "markdown"
	// FormatHTML renders the note text as Markdown into HTML.
	FormatHTML Format = "html"
)

// ParseFormat converts a request value into a Format, defaulting to
// markdown.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatMarkdown, "":
		return FormatMarkdown, true
	case FormatHTML:
		return FormatHTML, true
	}
	return "", false
}

// KV is the slice of the key-value store the service needs.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Service appends exported notes to the durable bridge file list.
type Service struct {
	kv  KV
	md  goldmark.Markdown
	now func() time.Time
}

// NewService creates a Service over the given storage.
func NewService(kv KV) *Service {
	return &Service{
		kv:  kv,
		md:  goldmark.New(),
		now: time.Now,
	}
}

// Export builds a bridge record for the note content and appends it to the
// durable list.
func (s *Service) Export(name, content string, format Format) (models.BridgeFile, error) {
	if format == FormatHTML {
		var buf bytes.Buffer
		if err := s.md.Convert([]byte(content), &buf); err != nil {
			return models.BridgeFile{}, apperrors.Wrap(apperrors.ErrExportFailed, "failed to render note as HTML", err)
		}
		content = buf.String()
	}

	file := models.BridgeFile{
		Name:      name,
		Content:   content,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	files := append(s.Files(), file)
	data, err := json.Marshal(files)
	if err != nil {
		return models.BridgeFile{}, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encode export list", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return models.BridgeFile{}, apperrors.Wrap(apperrors.ErrExportFailed, "failed to persist export list", err)
	}
	return file, nil
}

// Files returns every exported record, oldest first. Undecodable state is
// discarded.
func (s *Service) Files() []models.BridgeFile {
	raw, ok := s.kv.Get(StorageKey)
	if !ok {
		return []models.BridgeFile{}
	}

	var files []models.BridgeFile
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		logging.Warn("discarding undecodable export list", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.BridgeFile{}
	}
	if files == nil {
		files = []models.BridgeFile{}
	}
	return files
}
