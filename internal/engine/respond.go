package engine

import (
	"fmt"
	"strings"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/pkg/textutil"
)

// maxListedItems caps the number of assignments or drives rendered per
// response.
const maxListedItems = 5

const helpStudent = `**I can help you with:**
✅ **Attendance** - Track classes, set alerts, calculate required attendance
✅ **Academics** - View grades, CGPA, transcripts, course details
✅ **Assignments** - Check pending, deadlines, submit, view feedback
✅ **Placements** - Browse drives, check eligibility, apply, request recommendations
✅ **Library** - Search books, borrow, return, renew, track due dates & fines
✅ **Hostel** - Room info, maintenance tickets, visitation, complaints
✅ **Feedback** - Rate courses, submit complaints, track responses
✅ **Notifications** - Real-time alerts for attendance, assignments, library, placements

Ask me: "How's my attendance?" or "Any pending assignments?"`

const helpFaculty = `**I can help you with:**
✅ **Attendance** - Mark attendance for class, auto-Alert low-attendance students
✅ **Grading** - Save grades by exam type, export CSV, letter grade calculation
✅ **Resources** - Upload lecture notes, videos, materials by subject/semester
✅ **Recommendations** - Manage recommendation requests from students
✅ **Class Stats** - View student performance, attendance trends

Ask me: "How do I mark attendance?" or "Grade recording process?"`

const helpAdmin = `**I can help you with:**
✅ **Student Signups** - Review and approve/reject student applications (branch + roll number)
✅ **Placements** - Create drives, manage applicants, eligibility filtering
✅ **Library** - Add books with ISBN lookup, manage inventory, track fines
✅ **Finance** - Track fees, collect fines, generate ledgers
✅ **Analytics** - Feedback trends, complaint resolution, performance metrics
✅ **Faculty Oversight** - Monitor faculty performance, allocations, reviews

Ask me: "Pending student signups?" or "Create placement drive?"`

// respond renders the reply text for a classified message. Every branch
// terminates with text; absent data degrades to a generic pointer at the
// relevant portal section.
func (e *Engine) respond(message string, in intent.Intent, role campus.Role, data campus.Result) string {
	switch in {
	case intent.Greeting:
		return greetingResponse(role)
	case intent.Attendance:
		return attendanceResponse(data)
	case intent.Assignment:
		return assignmentResponse(data)
	case intent.Placement:
		return placementResponse(data)
	case intent.Library:
		return libraryResponse(data)
	case intent.Hostel:
		return hostelResponse(data)
	case intent.Finance:
		return financeResponse(data)
	case intent.Grades:
		return "📈 Your academic performance is tracked in the Academics section. You can view your CGPA, semester grades, and performance trends there."
	case intent.Schedule:
		return "📅 Your class schedule is available in the Dashboard. Today's upcoming classes will be shown at the top."
	case intent.Exam:
		return "📝 Exam schedules are posted in the Academics section. Check for upcoming midterms and end-semester exams."
	case intent.Feedback:
		return "📢 You can submit feedback, rate courses, or raise complaints in the Feedback section. Your feedback helps improve the campus experience!"
	case intent.Faculty:
		if role == campus.RoleAdmin {
			return "👨‍🏫 The Faculty Oversight section provides performance metrics, course allocations, and management tools for faculty members."
		}
		return "For faculty-related queries, you can check course details in Academics or contact your department office."
	case intent.Help:
		return e.helpResponse(role)
	default:
		return e.generalResponse(message)
	}
}

func greetingResponse(role campus.Role) string {
	var pitch string
	switch role {
	case campus.RoleFaculty:
		pitch = "I can help with attendance management, grading, resources, and recommendations!"
	case campus.RoleAdmin:
		pitch = "I can help with campus administration, analytics, and management tasks!"
	default:
		pitch = "I can help with attendance, assignments, placements, library, and more!"
	}
	return "Hello! 👋 Welcome to CampusAI. " + pitch
}

func attendanceResponse(data campus.Result) string {
	if !data.Present() || len(data.Attendance) == 0 {
		return "I can help with attendance tracking. Check the Attendance section to view your detailed records, or tell me your student ID."
	}

	lines := []string{"📊 **Your Attendance Summary:**\n"}
	var sum float64
	for _, rec := range data.Attendance {
		sum += rec.Percentage
		lines = append(lines, fmt.Sprintf("%s **%s**: %s (%d/%d classes)",
			textutil.AttendanceGlyph(rec.Percentage), rec.Subject,
			textutil.Percent(rec.Percentage), rec.Attended, rec.Total))
	}

	avg := sum / float64(len(data.Attendance))
	lines = append(lines, fmt.Sprintf("\n📈 **Overall Average**: %s", textutil.Percent(avg)))
	if avg < textutil.AttendanceGoodThreshold {
		lines = append(lines, "\n⚠️ Your average is below 75%. You may face detention. Please attend more classes!")
	}
	return strings.Join(lines, "\n")
}

func assignmentResponse(data campus.Result) string {
	if !data.Present() || len(data.Assignments) == 0 {
		return "Check the Assignments section for your current tasks and deadlines."
	}

	var pending []campus.Assignment
	for _, a := range data.Assignments {
		if a.Status == "pending" {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return "✅ Great news! You have no pending assignments right now."
	}

	lines := []string{fmt.Sprintf("📝 **You have %d pending assignment(s):**\n", len(pending))}
	for _, a := range pending[:min(len(pending), maxListedItems)] {
		due := a.DueDate
		if due == "" {
			due = "N/A"
		}
		lines = append(lines, fmt.Sprintf("• **%s** — %s (Due: %s)", a.Title, a.Subject, due))
	}
	return strings.Join(lines, "\n")
}

func placementResponse(data campus.Result) string {
	if !data.Present() || len(data.Placements) == 0 {
		return "Visit the Placements section to view active drives and apply."
	}

	lines := []string{fmt.Sprintf("💼 **%d Active Placement Drive(s):**\n", len(data.Placements))}
	for _, d := range data.Placements[:min(len(data.Placements), maxListedItems)] {
		ctc := d.CTC
		if ctc == "" {
			ctc = "N/A"
		}
		cutoff := "N/A"
		if d.CutoffCGPA != nil {
			cutoff = fmt.Sprintf("%g", *d.CutoffCGPA)
		}
		lines = append(lines, fmt.Sprintf("• **%s** — %s | CTC: %s | Cutoff: %s CGPA",
			d.Company, d.Role, ctc, cutoff))
	}
	lines = append(lines, "\nDeadlines approaching! Make sure your resume is updated.")
	return strings.Join(lines, "\n")
}

func libraryResponse(data campus.Result) string {
	if !data.Present() || data.Library == nil {
		return "The library section lets you search, borrow, and return books. Library hours: 8 AM - 10 PM."
	}

	catalog := data.Library.Catalog
	available := 0
	for _, b := range catalog {
		if b.Available > 0 {
			available++
		}
	}

	myBooks := data.Library.MyBooks
	if len(myBooks) > 0 {
		dueSoon := 0
		for _, b := range myBooks {
			if b.IsUrgent || b.IsOverdue {
				dueSoon++
			}
		}
		return fmt.Sprintf("📚 You have %d borrowed book(s). %d due soon/overdue. Catalog has %d books, %d available now.",
			len(myBooks), dueSoon, len(catalog), available)
	}
	return fmt.Sprintf("📚 **Library**: %d books catalogued, %d available for borrowing.", len(catalog), available)
}

func hostelResponse(data campus.Result) string {
	if !data.Present() || len(data.Hostel) == 0 {
		return "Check the Hostel section for room details, mess menu, and complaint registration."
	}

	vacant := 0
	for _, r := range data.Hostel {
		if r.Status == "vacant" {
			vacant++
		}
	}
	return fmt.Sprintf("🏠 **Hostel**: %d rooms tracked, %d vacant. You can view your room details or raise a maintenance complaint.",
		len(data.Hostel), vacant)
}

func financeResponse(data campus.Result) string {
	if !data.Present() || len(data.Finance) == 0 {
		return "Check the Finance section for fee details and payment history."
	}

	pending := 0
	var total float64
	for _, f := range data.Finance {
		if f.Status == "pending" {
			pending++
			total += f.Amount
		}
	}
	if pending == 0 {
		return "✅ All your fees are paid. No pending dues!"
	}
	return fmt.Sprintf("💰 You have %d pending payment(s) totaling %s. Please clear your dues before the deadline.",
		pending, textutil.Rupees(total))
}

func (e *Engine) helpResponse(role campus.Role) string {
	var base string
	switch role {
	case campus.RoleFaculty:
		base = helpFaculty
	case campus.RoleAdmin:
		base = helpAdmin
	default:
		base = helpStudent
	}

	if snippet := e.snippet(intent.Help); snippet != "" {
		return base + "\n\nFYI:\n" + snippet
	}
	return base
}

func (e *Engine) generalResponse(message string) string {
	if snippet := e.snippet(intent.General); snippet != "" {
		return fmt.Sprintf("I understand you're asking about %q. Here is a quick reference that might help:\n%s",
			message, snippet)
	}
	return fmt.Sprintf("I understand you're asking about %q. I'm CampusAI — I can help with campus-related queries. Try asking about attendance, assignments, placements, library, or finances!",
		message)
}
