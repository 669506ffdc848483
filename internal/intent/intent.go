// Package intent classifies free-text user messages into a fixed set of
// intent categories using ordered regular-expression matching.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose category of a user message.
type Intent string

// All recognized intents. General is the fallback when no pattern matches.
const (
	Greeting   Intent = "greeting"
	Attendance Intent = "attendance"
	Assignment Intent = "assignment"
	Placement  Intent = "placement"
	Library    Intent = "library"
	Hostel     Intent = "hostel"
	Finance    Intent = "finance"
	Grades     Intent = "grades"
	Schedule   Intent = "schedule"
	Exam       Intent = "exam"
	Help       Intent = "help"
	Feedback   Intent = "feedback"
	Faculty    Intent = "faculty"
	General    Intent = "general"
)

// String returns the intent name.
func (i Intent) String() string {
	return string(i)
}

type pattern struct {
	intent Intent
	re     *regexp.Regexp
}

// patterns is the priority-ordered intent table. A message matching several
// categories resolves to the first match in this order ("faculty feedback"
// classifies as feedback, not faculty), so the order is part of the contract.
var patterns = []pattern{
	{Greeting, regexp.MustCompile(`\b(hi|hello|hey|good\s*(morning|afternoon|evening)|namaste)\b`)},
	{Attendance, regexp.MustCompile(`\b(attendance|absent|present|classes|bunk|detention)\b`)},
	{Assignment, regexp.MustCompile(`\b(assignment|homework|submission|submit|deadline|due)\b`)},
	{Placement, regexp.MustCompile(`\b(placement|job|internship|company|drive|ctc|salary|recruit|career)\b`)},
	{Library, regexp.MustCompile(`\b(library|book|borrow|return|reading|reference)\b`)},
	{Hostel, regexp.MustCompile(`\b(hostel|room|accommodation|mess|warden|complaint)\b`)},
	{Finance, regexp.MustCompile(`\b(fee|payment|dues|finance|tuition|scholarship|refund)\b`)},
	{Grades, regexp.MustCompile(`\b(grade|cgpa|sgpa|marks|result|score|rank|performance|gpa)\b`)},
	{Schedule, regexp.MustCompile(`\b(timetable|schedule|class|lecture|slot|period|today)\b`)},
	{Exam, regexp.MustCompile(`\b(exam|test|quiz|midterm|endsem|semester)\b`)},
	{Help, regexp.MustCompile(`\b(help|assist|support|guide|how\s+to|what\s+can)\b`)},
	{Feedback, regexp.MustCompile(`\b(feedback|complaint|suggestion|review|rate|rating)\b`)},
	{Faculty, regexp.MustCompile(`\b(faculty|professor|teacher|sir|ma'am|dr\.)\b`)},
}

// Classify maps a raw message to an intent. Matching is case-insensitive
// (the message is lowercased and trimmed first) and first-match-wins over
// the ordered pattern table. Returns General when nothing matches.
func Classify(message string) Intent {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, p := range patterns {
		if p.re.MatchString(msg) {
			return p.intent
		}
	}
	return General
}
