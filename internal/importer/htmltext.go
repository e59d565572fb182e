package importer

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for HTML-to-text normalization. Apple Notes bodies
// are shallow HTML; a close tag immediately followed by the same kind of
// open tag is one paragraph break, while a bare close tag carries no break
// of its own.
var (
	pairBreaks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)</p>\s*<p>`),
		regexp.MustCompile(`(?i)</div>\s*<div>`),
		regexp.MustCompile(`(?i)</li>\s*<li>`),
		regexp.MustCompile(`(?i)</h[1-6]>\s*<h[1-6]>`),
	}
	brTag       = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClose  = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li)>`)
	anyTag      = regexp.MustCompile(`<[^>]*>`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)

	entityDecoder = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// StripHTML normalizes an HTML note body into plain text and removes the
// note's own title line when it leads the content.
func StripHTML(text, noteName string) string {
	for _, re := range pairBreaks {
		text = re.ReplaceAllString(text, "\n")
	}
	text = brTag.ReplaceAllString(text, "\n")

	// Remaining block closes are deleted without a newline to avoid
	// doubled breaks.
	text = blockClose.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, "")

	text = spaceRuns.ReplaceAllString(text, " ")
	text = entityDecoder.Replace(text)
	text = newlineRuns.ReplaceAllString(text, "\n\n")

	text = stripTitle(text, noteName)
	return strings.TrimSpace(text)
}

// stripTitle removes the first non-blank line when it is a case-insensitive
// exact match of the note name.
func stripTitle(text, noteName string) string {
	if noteName == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, noteName) {
			return strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
		}
		break
	}
	return text
}
