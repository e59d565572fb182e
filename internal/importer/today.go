package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date marker formats accepted in note bodies.
var dateMarkers = []*regexp.Regexp{
	// MM/DD/YYYY
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	// Month D, YYYY
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`),
	// YYYY-MM-DD
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
}

// todayMatchers builds the patterns that recognize the given day in each of
// the accepted formats.
func todayMatchers(today time.Time) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`\b%d/%d/%d\b`, int(today.Month()), today.Day(), today.Year())),
		regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\s+%d,\s+%d\b`, today.Month().String(), today.Day(), today.Year())),
		regexp.MustCompile(`\b` + today.Format("2006-01-02") + `\b`),
	}
}

// TodaySection narrows text to the runs of lines opened by a marker matching
// today's date and closed by the next date marker of any format. Marker
// lines are part of the output. Returns false when no line matches today.
func TodaySection(text string, today time.Time) (string, bool) {
	matchers := todayMatchers(today)

	var collected []string
	inToday := false

	for _, line := range strings.Split(text, "\n") {
		if hasDateMarker(line) {
			inToday = matchesAny(matchers, line)
			if inToday {
				collected = append(collected, line)
			}
		} else if inToday {
			collected = append(collected, line)
		}
	}

	if len(collected) == 0 {
		return "", false
	}
	return strings.Join(collected, "\n"), true
}

func hasDateMarker(line string) bool {
	return matchesAny(dateMarkers, line)
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
