// Package suggest provides static follow-up suggestion tables, keyed by
// detected intent and by role+page. Tables are immutable after init;
// lookups return copies so callers can never mutate shared state.
package suggest

import (
	"strings"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/intent"
)

// byIntent maps a detected intent to short follow-up prompts. Intents
// without an entry fall back to the general list.
var byIntent = map[intent.Intent][]string{
	intent.Greeting:   {"Check attendance", "Pending assignments", "Active placements"},
	intent.Attendance: {"Attendance prediction", "Required classes", "Subject-wise details"},
	intent.Assignment: {"Submit assignment", "Upload file", "Check deadlines"},
	intent.Placement:  {"Apply to drive", "Eligibility check", "Interview tips"},
	intent.Library:    {"Search books", "My borrowings", "New arrivals"},
	intent.Hostel:     {"Room details", "Raise complaint", "Mess menu"},
	intent.Finance:    {"Pay fees", "Fee structure", "Scholarship info"},
	intent.Grades:     {"View CGPA", "Semester report", "Performance trend"},
	intent.Help:       {"My attendance", "Pending work", "Campus info"},
	intent.General:    {"What can you do?", "My dashboard", "Help"},
}

// byPage is the two-level role → page → suggestions table. Unknown roles
// fall back to student; unknown pages fall back to the role's dashboard.
var byPage = map[campus.Role]map[string][]string{
	campus.RoleStudent: {
		"dashboard": {
			"📊 How's my attendance?",
			"📝 Any pending assignments?",
			"💼 Upcoming placement drives",
			"📚 Books due soon?",
			"🎓 My current CGPA",
		},
		"attendance": {
			"⚠️ Which subjects need attention?",
			"📈 Calculate required classes",
			"🔮 Attendance prediction",
			"📧 Set low-attendance alert",
		},
		"assignments": {
			"📋 Show pending work",
			"📤 Upload assignment",
			"⏰ Check deadlines",
			"✅ View grades and feedback",
		},
		"library": {
			"🔍 Search for a book",
			"📚 My borrowed books",
			"🔄 Renew a book",
			"⭐ Popular books",
			"💰 Pending fines",
		},
		"placements": {
			"💼 Eligible drives for me",
			"📋 Application status",
			"📄 Request recommendation letter",
			"📝 Prepare for interview",
		},
		"hostel": {
			"🏠 Room details",
			"🔧 Raise a maintenance complaint",
			"🍽️ Mess menu",
			"👥 Roommate info",
		},
		"feedback": {
			"📢 Submit feedback",
			"⭐ Rate a course",
			"💬 Track my complaints",
			"✅ View responses",
		},
		"academics": {
			"📈 My CGPA trend",
			"🎓 Semester results",
			"📚 Course details",
			"📊 Grade distribution",
		},
	},
	campus.RoleFaculty: {
		"dashboard": {
			"📅 Today's schedule",
			"👥 Student performance",
			"📝 Pending evaluations",
			"📊 Class statistics",
		},
		"attendance": {
			"✏️ Mark attendance",
			"⚠️ Low attendance students",
			"📊 Attendance report",
			"📧 Send alert to students",
		},
		"grading": {
			"⏳ Pending grades",
			"📊 Grade distribution",
			"📥 Upload marks from CSV",
			"📈 Performance analysis",
		},
		"resources": {
			"📤 Upload class material",
			"👁️ Shared resources",
			"📌 Pin important resource",
			"🔍 Resource statistics",
		},
		"recommendations": {
			"⏳ Pending requests",
			"✍️ Write recommendation",
			"👥 Student profiles",
			"📧 Track submitted letters",
		},
	},
	campus.RoleAdmin: {
		"dashboard": {
			"📊 Campus overview",
			"⏳ Pending approvals",
			"🚨 System alerts",
			"📈 Quick statistics",
		},
		"signup-management": {
			"✅ Approve signups",
			"❌ Reject signups",
			"👥 Pending count",
			"📅 Review history",
		},
		"placements": {
			"➕ Add new drive",
			"📊 Placement statistics",
			"💼 Applicants per drive",
			"📈 Success rate",
		},
		"library": {
			"➕ Add new book",
			"🔍 Search ISBN",
			"⏳ Overdue books",
			"📊 Inventory report",
			"💰 Fine collection status",
		},
		"finance": {
			"💰 Fee collection status",
			"⏳ Pending dues",
			"📊 Revenue report",
			"💳 Fine payments",
		},
		"feedback": {
			"📊 Student satisfaction",
			"📉 Complaint trends",
			"🚨 Flagged items",
			"✅ Action items",
		},
		"faculty-oversight": {
			"👨‍🏫 Faculty performance",
			"📚 Course allocations",
			"⭐ Review requests",
			"📊 Teaching metrics",
		},
	},
}

// ForIntent returns the follow-up prompts for a detected intent.
func ForIntent(in intent.Intent) []string {
	list, ok := byIntent[in]
	if !ok {
		list = byIntent[intent.General]
	}
	return clone(list)
}

// ForPage returns contextual prompts for the page the user is viewing.
// The page key is the final path segment when the input looks like a path.
func ForPage(role campus.Role, page string) []string {
	pages, ok := byPage[role]
	if !ok {
		pages = byPage[campus.RoleStudent]
	}

	key := page
	if strings.Contains(page, "/") {
		parts := strings.Split(page, "/")
		key = parts[len(parts)-1]
	}

	list, ok := pages[key]
	if !ok {
		list = pages["dashboard"]
	}
	return clone(list)
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
