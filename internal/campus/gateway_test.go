package campus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, 2*time.Second, nil)
	return NewGateway(client, logger.New("error"))
}

func cgpa(v float64) *float64 {
	return &v
}

func TestGateway_AttendanceStudentOnly(t *testing.T) {
	var calls atomic.Int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"subject":"Maths","attended":28,"total":30,"percentage":93.3}]`))
	}))

	res := gw.Fetch(context.Background(), intent.Attendance, "u1", RoleStudent, Context{})
	assert.True(t, res.Present())
	assert.Len(t, res.Attendance, 1)

	// faculty and admin get no attendance query at all
	res = gw.Fetch(context.Background(), intent.Attendance, "u1", RoleFaculty, Context{})
	assert.False(t, res.Present())
	res = gw.Fetch(context.Background(), intent.Attendance, "u1", RoleAdmin, Context{})
	assert.False(t, res.Present())
	assert.Equal(t, int32(1), calls.Load())
}

func TestGateway_StudentIDResolution(t *testing.T) {
	tests := []struct {
		name string
		cctx Context
		want string
	}{
		{"studentId wins", Context{StudentID: "S1", RollNumber: "R1"}, "S1"},
		{"rollNumber next", Context{RollNumber: "R1"}, "R1"},
		{"userId fallback", Context{}, "u42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query().Get("studentId")
				_, _ = w.Write([]byte(`[]`))
			}))

			gw.Fetch(context.Background(), intent.Attendance, "u42", RoleStudent, tt.cctx)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateway_PlacementCGPAFilter(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"company":"Acme","role":"SDE","ctc":"12 LPA","cutoffCgpa":7.0},
			{"company":"Globex","role":"Analyst","ctc":"8 LPA","cutoffCgpa":8.5},
			{"company":"Initech","role":"QA","ctc":"6 LPA","cutoffCgpa":6.0},
			{"company":"Umbrella","role":"Intern","ctc":"4 LPA"}
		]`))
	}))

	// with CGPA: local filter keeps drives at or below the cutoff, and
	// drives without a cutoff are always eligible
	res := gw.Fetch(context.Background(), intent.Placement, "u1", RoleStudent, Context{CGPA: cgpa(7.5)})
	require.True(t, res.Present())
	require.Len(t, res.Placements, 3)
	assert.Equal(t, "Acme", res.Placements[0].Company)
	assert.Equal(t, "Initech", res.Placements[1].Company)
	assert.Equal(t, "Umbrella", res.Placements[2].Company)

	// without CGPA: unfiltered list
	res = gw.Fetch(context.Background(), intent.Placement, "u1", RoleStudent, Context{})
	require.True(t, res.Present())
	assert.Len(t, res.Placements, 4)
}

func TestGateway_LibraryPartialFailure(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/library/books":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/api/library/my-books":
			_, _ = w.Write([]byte(`[{"bookTitle":"Clean Code","daysRemaining":2,"isOverdue":false,"isUrgent":true}]`))
		}
	}))

	res := gw.Fetch(context.Background(), intent.Library, "u1", RoleStudent, Context{})
	require.True(t, res.Present())
	require.NotNil(t, res.Library)
	assert.Empty(t, res.Library.Catalog, "failed catalog query defaults to empty")
	require.Len(t, res.Library.MyBooks, 1)
	assert.Equal(t, "Clean Code", res.Library.MyBooks[0].BookTitle)
}

func TestGateway_FinanceRoleGating(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"description":"Tuition","amount":45000,"status":"pending"}]`))
	}))

	res := gw.Fetch(context.Background(), intent.Finance, "u1", RoleStudent, Context{})
	assert.True(t, res.Present())

	res = gw.Fetch(context.Background(), intent.Finance, "u1", RoleAdmin, Context{})
	assert.True(t, res.Present())

	res = gw.Fetch(context.Background(), intent.Finance, "u1", RoleFaculty, Context{})
	assert.False(t, res.Present())
}

func TestGateway_BackendFailureNeverRaises(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))

	for _, in := range []intent.Intent{
		intent.Attendance, intent.Assignment, intent.Placement,
		intent.Hostel, intent.Finance,
	} {
		res := gw.Fetch(context.Background(), in, "u1", RoleStudent, Context{})
		assert.False(t, res.Present(), "intent %s should degrade to absent", in)
	}

	// library degrades to present-but-empty, not absent
	res := gw.Fetch(context.Background(), intent.Library, "u1", RoleStudent, Context{})
	require.True(t, res.Present())
	assert.Empty(t, res.Library.Catalog)
	assert.Empty(t, res.Library.MyBooks)
}

func TestGateway_NonDataIntentsSkipNetwork(t *testing.T) {
	var calls atomic.Int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))

	for _, in := range []intent.Intent{
		intent.Greeting, intent.Grades, intent.Schedule, intent.Exam,
		intent.Help, intent.Feedback, intent.Faculty, intent.General,
	} {
		res := gw.Fetch(context.Background(), in, "u1", RoleStudent, Context{})
		assert.False(t, res.Present(), "intent %s should be absent", in)
	}
	assert.Equal(t, int32(0), calls.Load(), "no network calls expected")
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"student", RoleStudent},
		{"faculty", RoleFaculty},
		{"admin", RoleAdmin},
		{"", RoleStudent},
		{"superuser", RoleStudent},
	}

	for _, tt := range tests {
		if got := NormalizeRole(tt.in); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
