package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/errors"
	"github.com/smartcampus/campusai-go/internal/knowledge"
	"github.com/smartcampus/campusai-go/internal/logger"
	"github.com/smartcampus/campusai-go/internal/metrics"
)

func newTestEngine(t *testing.T, handler http.Handler) *Engine {
	t.Helper()
	return newTestEngineWithKB(t, handler, filepath.Join(t.TempDir(), "missing.md"))
}

func newTestEngineWithKB(t *testing.T, handler http.Handler, kbPath string) *Engine {
	t.Helper()
	if handler == nil {
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unexpected backend call", http.StatusInternalServerError)
		})
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New("error")
	m := metrics.New(prometheus.NewRegistry())
	client := campus.NewClient(srv.URL, 2*time.Second, m)
	gateway := campus.NewGateway(client, log)
	kb := knowledge.Load(kbPath, log)
	return New(gateway, kb, m, log)
}

func TestChat_EmptyMessage(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Chat(context.Background(), Request{Message: ""})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestChat_WhitespaceMessageFallsThrough(t *testing.T) {
	e := newTestEngine(t, nil)

	reply, err := e.Chat(context.Background(), Request{Message: "   "})
	require.NoError(t, err)
	assert.Equal(t, "general", reply.Intent)
	assert.Contains(t, reply.Response, `"   "`)
}

func TestChat_GreetingPerRole(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		role string
		want string
	}{
		{"student", "attendance, assignments, placements, library, and more"},
		{"faculty", "attendance management, grading, resources, and recommendations"},
		{"admin", "campus administration, analytics, and management tasks"},
		{"intruder", "attendance, assignments, placements, library, and more"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			reply, err := e.Chat(context.Background(), Request{Message: "hello there", Role: tt.role})
			require.NoError(t, err)
			assert.Equal(t, "greeting", reply.Intent)
			assert.Contains(t, reply.Response, "Hello! 👋 Welcome to CampusAI.")
			assert.Contains(t, reply.Response, tt.want)
			assert.Equal(t, []string{"Check attendance", "Pending assignments", "Active placements"}, reply.Suggestions)
			assert.False(t, reply.Timestamp.IsZero())
		})
	}
}

func TestChat_AttendanceSummary(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/attendance", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"subject":"Maths","attended":60,"total":100,"percentage":60},
			{"subject":"Physics","attended":80,"total":100,"percentage":80},
			{"subject":"Chemistry","attended":90,"total":100,"percentage":90}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "how is my attendance", UserID: "s1", Role: "student"})
	require.NoError(t, err)

	assert.Equal(t, "attendance", reply.Intent)
	assert.Contains(t, reply.Response, "📊 **Your Attendance Summary:**")
	assert.Contains(t, reply.Response, "🔴 **Maths**: 60.0% (60/100 classes)")
	assert.Contains(t, reply.Response, "✅ **Physics**: 80.0% (80/100 classes)")
	assert.Contains(t, reply.Response, "📈 **Overall Average**: 76.7%")
	assert.NotContains(t, reply.Response, "detention")
}

func TestChat_AttendanceDetentionWarning(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"subject":"Maths","attended":60,"total":100,"percentage":60}]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "attendance", Role: "student"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "⚠️ Your average is below 75%. You may face detention.")
}

func TestChat_AttendanceAbsentData(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "attendance", Role: "student"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "I can help with attendance tracking.")
}

func TestChat_AssignmentsPending(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"title":"Lab 1","subject":"Physics","status":"pending","dueDate":"2026-09-05"},
			{"title":"Essay","subject":"English","status":"submitted","dueDate":"2026-09-01"},
			{"title":"Lab 2","subject":"Physics","status":"pending"}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "any pending homework?"})
	require.NoError(t, err)

	assert.Equal(t, "assignment", reply.Intent)
	assert.Contains(t, reply.Response, "📝 **You have 2 pending assignment(s):**")
	assert.Contains(t, reply.Response, "• **Lab 1** — Physics (Due: 2026-09-05)")
	assert.Contains(t, reply.Response, "• **Lab 2** — Physics (Due: N/A)")
	assert.NotContains(t, reply.Response, "Essay")
}

func TestChat_AssignmentsListCapped(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"title":"A1","subject":"S","status":"pending"},
			{"title":"A2","subject":"S","status":"pending"},
			{"title":"A3","subject":"S","status":"pending"},
			{"title":"A4","subject":"S","status":"pending"},
			{"title":"A5","subject":"S","status":"pending"},
			{"title":"A6","subject":"S","status":"pending"}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "assignment status"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "6 pending assignment(s)")
	assert.Contains(t, reply.Response, "**A5**")
	assert.NotContains(t, reply.Response, "**A6**")
}

func TestChat_AssignmentsNonePending(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"Essay","subject":"English","status":"submitted"}]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "homework due?"})
	require.NoError(t, err)
	assert.Equal(t, "✅ Great news! You have no pending assignments right now.", reply.Response)
}

func TestChat_PlacementsWithCGPAFilter(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "open", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`[
			{"company":"Acme","role":"SDE","ctc":"12 LPA","cutoffCgpa":7.0},
			{"company":"Globex","role":"Analyst","ctc":"30 LPA","cutoffCgpa":9.0}
		]`))
	}))

	cgpa := 7.5
	reply, err := e.Chat(context.Background(), Request{
		Message: "open placement drives",
		Context: campus.Context{CGPA: &cgpa},
	})
	require.NoError(t, err)

	assert.Contains(t, reply.Response, "💼 **1 Active Placement Drive(s):**")
	assert.Contains(t, reply.Response, "• **Acme** — SDE | CTC: 12 LPA | Cutoff: 7 CGPA")
	assert.NotContains(t, reply.Response, "Globex")
	assert.Contains(t, reply.Response, "Make sure your resume is updated.")
}

func TestChat_PlacementWithoutCutoff(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"company":"Umbrella","role":"Intern","ctc":"4 LPA"}]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "open placement drives"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "• **Umbrella** — Intern | CTC: 4 LPA | Cutoff: N/A CGPA")
}

func TestChat_LibraryCounts(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/library/books":
			_, _ = w.Write([]byte(`[
				{"title":"B1","available":2},
				{"title":"B2","available":0},
				{"title":"B3","available":1}
			]`))
		case "/api/library/my-books":
			_, _ = w.Write([]byte(`[
				{"bookTitle":"B1","daysRemaining":2,"isUrgent":true},
				{"bookTitle":"B2","daysRemaining":10}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "my library books"})
	require.NoError(t, err)
	assert.Equal(t, "📚 You have 2 borrowed book(s). 1 due soon/overdue. Catalog has 3 books, 2 available now.", reply.Response)
}

func TestChat_LibraryNoLoans(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/library/books" {
			_, _ = w.Write([]byte(`[{"title":"B1","available":1}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "library hours book"})
	require.NoError(t, err)
	assert.Equal(t, "📚 **Library**: 1 books catalogued, 1 available for borrowing.", reply.Response)
}

func TestChat_HostelVacancy(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"roomNumber":"A-101","status":"occupied"},
			{"roomNumber":"A-102","status":"vacant"},
			{"roomNumber":"A-103","status":"vacant"}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "hostel room availability"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "🏠 **Hostel**: 3 rooms tracked, 2 vacant.")
}

func TestChat_FinancePendingDues(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"description":"Tuition","amount":10000,"status":"pending"},
			{"description":"Hostel","amount":2500,"status":"pending"},
			{"description":"Exam","amount":500,"status":"paid"}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "fee dues", Role: "student"})
	require.NoError(t, err)
	assert.Equal(t, "💰 You have 2 pending payment(s) totaling ₹12,500. Please clear your dues before the deadline.", reply.Response)
}

func TestChat_FinanceFractionalDues(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"description":"Tuition","amount":10000.25,"status":"pending"},
			{"description":"Library fine","amount":700.25,"status":"pending"}
		]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "fee dues", Role: "student"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "totaling ₹10,700.50")
}

func TestChat_FinanceAllPaid(t *testing.T) {
	e := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"description":"Tuition","amount":10000,"status":"paid"}]`))
	}))

	reply, err := e.Chat(context.Background(), Request{Message: "tuition payment", Role: "student"})
	require.NoError(t, err)
	assert.Equal(t, "✅ All your fees are paid. No pending dues!", reply.Response)
}

func TestChat_FinanceFacultyGetsNoData(t *testing.T) {
	e := newTestEngine(t, nil)

	reply, err := e.Chat(context.Background(), Request{Message: "fee structure", Role: "faculty"})
	require.NoError(t, err)
	assert.Equal(t, "Check the Finance section for fee details and payment history.", reply.Response)
}

func TestChat_CannedIntents(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		message string
		role    string
		intent  string
		want    string
	}{
		{"what are my marks", "student", "grades", "Academics section"},
		{"today's timetable", "student", "schedule", "class schedule"},
		{"when is the endsem exam", "student", "exam", "Exam schedules"},
		{"give feedback about the mess food", "student", "hostel", "Hostel section"},
		{"rate this course", "student", "feedback", "Feedback section"},
		{"contact professor", "student", "faculty", "department office"},
		{"contact professor", "admin", "faculty", "Faculty Oversight section"},
	}

	for _, tt := range tests {
		t.Run(tt.message+"/"+tt.role, func(t *testing.T) {
			reply, err := e.Chat(context.Background(), Request{Message: tt.message, Role: tt.role})
			require.NoError(t, err)
			assert.Equal(t, tt.intent, reply.Intent)
			assert.Contains(t, reply.Response, tt.want)
		})
	}
}

func TestChat_HelpWithKnowledgeSnippet(t *testing.T) {
	kbPath := filepath.Join(t.TempDir(), "kb.md")
	kb := "## 1. STUDENT PORTAL FEATURES\n- Attendance tracking with alerts\n- Assignment submission\n\n## 2. FACULTY PORTAL\n- Grading\n"
	require.NoError(t, os.WriteFile(kbPath, []byte(kb), 0o600))

	e := newTestEngineWithKB(t, nil, kbPath)

	reply, err := e.Chat(context.Background(), Request{Message: "what can you do", Role: "student"})
	require.NoError(t, err)

	assert.Equal(t, "help", reply.Intent)
	assert.Contains(t, reply.Response, "**I can help you with:**")
	assert.Contains(t, reply.Response, "FYI:\n- Attendance tracking with alerts\n- Assignment submission")
	assert.NotContains(t, reply.Response, "Grading")
}

func TestChat_HelpWithoutSnippet(t *testing.T) {
	e := newTestEngine(t, nil)

	reply, err := e.Chat(context.Background(), Request{Message: "what can you do", Role: "admin"})
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "**Student Signups**")
	assert.NotContains(t, reply.Response, "FYI:")
}

func TestChat_GeneralFallbackQuotesMessage(t *testing.T) {
	e := newTestEngine(t, nil)

	reply, err := e.Chat(context.Background(), Request{Message: "sing me a song"})
	require.NoError(t, err)

	assert.Equal(t, "general", reply.Intent)
	assert.Contains(t, reply.Response, `"sing me a song"`)
	assert.Contains(t, reply.Response, "I'm CampusAI")
	assert.Equal(t, []string{"What can you do?", "My dashboard", "Help"}, reply.Suggestions)
}
