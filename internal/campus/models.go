// Package campus defines the campus domain model and the read-only gateway
// to the campus backend data service.
package campus

// Role is the caller's persona, controlling data access and phrasing.
type Role string

// Recognized roles. Unrecognized input falls back to RoleStudent.
const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// NormalizeRole maps arbitrary caller input to a recognized role,
// defaulting to student.
func NormalizeRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return Role(s)
	default:
		return RoleStudent
	}
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// Context carries optional caller-supplied fields used to parameterize data
// queries. Every field is optional; absence never causes an error.
type Context struct {
	StudentID  string   `json:"studentId,omitempty"`
	RollNumber string   `json:"rollNumber,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	Semester   string   `json:"semester,omitempty"`
	CGPA       *float64 `json:"cgpa,omitempty"`
}

// ResolveStudentID returns the effective student id for queries:
// studentId, then rollNumber, then the authenticated user id.
func (c Context) ResolveStudentID(userID string) string {
	if c.StudentID != "" {
		return c.StudentID
	}
	if c.RollNumber != "" {
		return c.RollNumber
	}
	return userID
}

// SubjectAttendance is a per-subject attendance record.
// Invariant (backend-enforced): Attended <= Total, Total >= 0.
type SubjectAttendance struct {
	Subject    string  `json:"subject"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttendanceSummary is the subject-wise attendance breakdown with an
// overall percentage, as served by /api/attendance/summary.
type AttendanceSummary struct {
	Overall     float64             `json:"overall"`
	SubjectWise []SubjectAttendance `json:"subjectWise"`
}

// Assignment is a published assignment record.
type Assignment struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Status  string `json:"status"` // "pending" or "submitted"
	DueDate string `json:"dueDate"`
}

// PlacementDrive is an open placement drive.
type PlacementDrive struct {
	Company    string  `json:"company"`
	Role       string  `json:"role"`
	CTC        string  `json:"ctc"` // free-form, e.g. "12 LPA"
	CutoffCGPA *float64 `json:"cutoffCgpa"` // nil when the drive has no cutoff
}

// Book is a library catalog entry.
type Book struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available int    `json:"available"` // copies available for borrowing
}

// BorrowedBook is a loan held by a student. IsOverdue and IsUrgent are
// computed by the backend from due dates; they are not recomputed here.
type BorrowedBook struct {
	BookTitle     string `json:"bookTitle"`
	DaysRemaining int    `json:"daysRemaining"` // negative when overdue
	IsOverdue     bool   `json:"isOverdue"`
	IsUrgent      bool   `json:"isUrgent"`
}

// HostelRoom is a hostel room record.
type HostelRoom struct {
	RoomNumber string `json:"roomNumber"`
	Status     string `json:"status"` // "vacant" or "occupied"
}

// FeeRecord is a fee or fine entry.
type FeeRecord struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"` // "pending" or "paid"
}

// LibraryData combines the two independent library queries.
type LibraryData struct {
	Catalog []Book
	MyBooks []BorrowedBook
}
