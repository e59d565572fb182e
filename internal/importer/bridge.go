// Package importer fetches note text from the external notes application and
// normalizes it into plain text.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoteNotFound reports that no note matched the requested name.
var ErrNoteNotFound = errors.New("note not found")

// Bridge fetches the raw body of a named note from the external notes
// application. The body is HTML as produced by Apple Notes.
type Bridge interface {
	FetchNoteBody(ctx context.Context, name string) (string, error)
}

// The sentinel the script returns when no note matches; distinguishes
// "no match" from an empty note body.
const notFoundSentinel = "Note not found"

const noteBodyScript = `
tell application "Notes"
	set foundNotes to notes whose name contains "%s"
	if length of foundNotes > 0 then
		set targetNote to item 1 of foundNotes
		return body of targetNote
	else
		return "%s"
	end if
end tell
`

// AppleScriptBridge reads notes from Apple Notes by shelling out to
// osascript.
type AppleScriptBridge struct{}

// FetchNoteBody returns the HTML body of the first note whose name contains
// name, or ErrNoteNotFound.
func (AppleScriptBridge) FetchNoteBody(ctx context.Context, name string) (string, error) {
	script := fmt.Sprintf(noteBodyScript, escapeAppleScript(name), notFoundSentinel)

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}

	body := strings.TrimSpace(string(out))
	if body == notFoundSentinel {
		return "", ErrNoteNotFound
	}
	return body, nil
}

// escapeAppleScript escapes a string for embedding in an AppleScript literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
