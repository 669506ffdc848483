// Package knowledge loads the static campus reference document and serves
// short per-intent snippets from it.
package knowledge

import (
	"os"
	"strings"

	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/internal/logger"
)

// fallbackText substitutes for the reference document when the configured
// file is missing or unreadable. Loading must never fail construction.
const fallbackText = `Smart Campus System Features:
- Student: Attendance tracking, Academics, Library, Placements, Assignments, Resources, Feedback
- Faculty: Grading, Attendance marking, Resources sharing, Recommendation letters
- Admin: Student signup approval, Placement management, Library management, Analytics
`

// maxSnippetLines caps the number of bullet lines returned per snippet.
const maxSnippetLines = 5

// sectionKeys maps intents to the heading fragment of their reference
// section. Intents missing here have no snippet.
var sectionKeys = map[intent.Intent]string{
	intent.Attendance: "1.4 Attendance Module",
	intent.Assignment: "1.5 Assignments Module",
	intent.Library:    "1.6 Library Module",
	intent.Hostel:     "1.7 Hostel Module",
	intent.Placement:  "1.8 Placements Module",
	intent.Feedback:   "1.10 Feedback Module",
	intent.Help:       "1. STUDENT PORTAL FEATURES",
}

// Base is the loaded reference document. It is read-only after construction
// and safe for concurrent use.
type Base struct {
	lines []string
}

// Load reads the reference document from path. A missing or unreadable file
// degrades silently to the built-in fallback text.
func Load(path string, log *logger.Logger) *Base {
	log = log.WithModule("knowledge")

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Knowledge base unreadable, using fallback text")
		return &Base{lines: strings.Split(fallbackText, "\n")}
	}

	log.WithField("path", path).WithField("bytes", len(data)).Info("Knowledge base loaded")
	return &Base{lines: strings.Split(string(data), "\n")}
}

// Snippet returns up to five bullet lines from the section mapped to the
// intent, or empty when the intent has no section or the section is not
// found. Collection stops at the next heading.
func (b *Base) Snippet(in intent.Intent) string {
	key, ok := sectionKeys[in]
	if !ok {
		return ""
	}

	var collected []string
	capture := false
	for _, line := range b.lines {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			if capture {
				break
			}
			if strings.Contains(line, key) {
				capture = true
			}
			continue
		}
		if capture && strings.HasPrefix(trimmed, "-") {
			collected = append(collected, trimmed)
			if len(collected) >= maxSnippetLines {
				break
			}
		}
	}

	return strings.Join(collected, "\n")
}

func isHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "##")
}
