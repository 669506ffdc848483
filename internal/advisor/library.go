package advisor

import (
	"fmt"
	"strings"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/pkg/textutil"
)

// RenewalAdvice is the outcome of scanning a user's borrowed books.
type RenewalAdvice struct {
	Advice      string
	UrgentCount int
}

// BuildRenewalAdvice classifies each borrowed book as overdue, urgent or
// safe and renders one line per book. Overdue takes precedence over urgent.
func BuildRenewalAdvice(books []campus.BorrowedBook) RenewalAdvice {
	if len(books) == 0 {
		return RenewalAdvice{Advice: "You don't have any borrowed books currently."}
	}

	lines := []string{fmt.Sprintf("📚 You have %d borrowed book(s):", len(books))}
	urgent := 0

	for _, book := range books {
		title := book.BookTitle
		if title == "" {
			title = "Unknown"
		}

		switch {
		case book.IsOverdue:
			days := book.DaysRemaining
			if days < 0 {
				days = -days
			}
			lines = append(lines, fmt.Sprintf(
				"%s \"%s\" — OVERDUE by %d day(s)! Return immediately to avoid fines.",
				textutil.GlyphCritical, title, days))
			urgent++
		case book.IsUrgent:
			lines = append(lines, fmt.Sprintf(
				"%s \"%s\" — Due in %d day(s). Consider renewing now!",
				textutil.GlyphUrgent, title, book.DaysRemaining))
			urgent++
		default:
			lines = append(lines, fmt.Sprintf(
				"%s \"%s\" — Due in %d day(s). You're good.",
				textutil.GlyphSafe, title, book.DaysRemaining))
		}
	}

	if urgent > 0 {
		lines = append(lines, "\n💡 Tip: You can renew books up to 2 times. Shall I renew the urgent ones?")
	}

	return RenewalAdvice{Advice: strings.Join(lines, "\n"), UrgentCount: urgent}
}
