package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `# Smart Campus Knowledge Base

## 1. STUDENT PORTAL FEATURES

- Unified dashboard with live notifications
- Role-based access for students, faculty and admins

### 1.4 Attendance Module

- Subject-wise attendance tracking with percentages
- Automatic low-attendance alerts below 75%
- Leave planning with safe-leave calculation
- Detention risk warnings
- Per-semester attendance history
- This sixth bullet must never be returned

### 1.5 Assignments Module

- Assignment upload with deadline tracking

### 1.6 Library Module

Some prose that is not a bullet.
- Catalog search and availability
- Renewals up to 2 times
`

func loadTestBase(t *testing.T) *Base {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.md")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o600))
	return Load(path, logger.New("error"))
}

func TestSnippet(t *testing.T) {
	kb := loadTestBase(t)

	snippet := kb.Snippet(intent.Attendance)
	lines := strings.Split(snippet, "\n")
	assert.Len(t, lines, 5, "snippet is capped at 5 bullets")
	assert.Equal(t, "- Subject-wise attendance tracking with percentages", lines[0])
	assert.NotContains(t, snippet, "sixth bullet")
}

func TestSnippet_StopsAtNextHeading(t *testing.T) {
	kb := loadTestBase(t)

	snippet := kb.Snippet(intent.Assignment)
	assert.Equal(t, "- Assignment upload with deadline tracking", snippet)
}

func TestSnippet_SkipsNonBulletLines(t *testing.T) {
	kb := loadTestBase(t)

	snippet := kb.Snippet(intent.Library)
	assert.NotContains(t, snippet, "prose")
	assert.Contains(t, snippet, "- Catalog search and availability")
}

func TestSnippet_HelpSection(t *testing.T) {
	kb := loadTestBase(t)

	snippet := kb.Snippet(intent.Help)
	assert.Contains(t, snippet, "- Unified dashboard with live notifications")
}

func TestSnippet_UnmappedIntent(t *testing.T) {
	kb := loadTestBase(t)

	assert.Empty(t, kb.Snippet(intent.Greeting))
	assert.Empty(t, kb.Snippet(intent.General))
	assert.Empty(t, kb.Snippet(intent.Grades))
}

func TestSnippet_SectionNotFound(t *testing.T) {
	kb := loadTestBase(t)

	// hostel is mapped but absent from the test document
	assert.Empty(t, kb.Snippet(intent.Hostel))
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	kb := Load(filepath.Join(t.TempDir(), "missing.md"), logger.New("error"))
	require.NotNil(t, kb, "loading must never fail")

	// fallback text has no section headings, so snippets are empty
	assert.Empty(t, kb.Snippet(intent.Attendance))
}
