package campus

import (
	"context"

	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/internal/logger"
)

// Result is the outcome of a gateway fetch: either present data for exactly
// one intent, or absent. Absent is a valid terminal state meaning "data
// unavailable" and is never an error.
type Result struct {
	Attendance  []SubjectAttendance
	Assignments []Assignment
	Placements  []PlacementDrive
	Library     *LibraryData
	Hostel      []HostelRoom
	Finance     []FeeRecord

	present bool
}

// Absent is the empty Result.
var Absent = Result{}

// Present reports whether the fetch produced data.
func (r Result) Present() bool {
	return r.present
}

// Gateway issues role-scoped read-only queries against the campus backend,
// one dispatch branch per data-bearing intent. Any transport error,
// non-success status, or malformed payload is swallowed and reported as
// Absent; the gateway never raises to its caller.
type Gateway struct {
	client *Client
	logger *logger.Logger
}

// NewGateway creates a gateway over the given backend client.
func NewGateway(client *Client, log *logger.Logger) *Gateway {
	return &Gateway{
		client: client,
		logger: log.WithModule("gateway"),
	}
}

// Client exposes the underlying backend client for direct advisor queries.
func (g *Gateway) Client() *Client {
	return g.client
}

// Fetch retrieves the data relevant to an intent. Intents without a data
// branch return Absent without any network call.
func (g *Gateway) Fetch(ctx context.Context, in intent.Intent, userID string, role Role, cctx Context) Result {
	studentID := cctx.ResolveStudentID(userID)

	switch in {
	case intent.Attendance:
		if role != RoleStudent {
			return Absent
		}
		records, err := g.client.Attendance(ctx, studentID)
		if err != nil {
			g.logger.WithError(err).Debug("Attendance query failed")
			return Absent
		}
		return Result{Attendance: records, present: true}

	case intent.Assignment:
		assignments, err := g.client.Assignments(ctx, cctx.Branch, cctx.Semester)
		if err != nil {
			g.logger.WithError(err).Debug("Assignments query failed")
			return Absent
		}
		return Result{Assignments: assignments, present: true}

	case intent.Placement:
		drives, err := g.client.OpenPlacements(ctx)
		if err != nil {
			g.logger.WithError(err).Debug("Placements query failed")
			return Absent
		}
		if cctx.CGPA != nil {
			eligible := make([]PlacementDrive, 0, len(drives))
			for _, d := range drives {
				if d.CutoffCGPA == nil || *d.CutoffCGPA <= *cctx.CGPA {
					eligible = append(eligible, d)
				}
			}
			drives = eligible
		}
		return Result{Placements: drives, present: true}

	case intent.Library:
		// Two independent queries; a failure in one does not fail the
		// other, each defaults to an empty sequence.
		lib := &LibraryData{}
		if catalog, err := g.client.Books(ctx); err != nil {
			g.logger.WithError(err).Debug("Library catalog query failed")
		} else {
			lib.Catalog = catalog
		}
		if mine, err := g.client.BorrowedBooks(ctx, studentID); err != nil {
			g.logger.WithError(err).Debug("Borrowed books query failed")
		} else {
			lib.MyBooks = mine
		}
		return Result{Library: lib, present: true}

	case intent.Hostel:
		rooms, err := g.client.Hostel(ctx)
		if err != nil {
			g.logger.WithError(err).Debug("Hostel query failed")
			return Absent
		}
		return Result{Hostel: rooms, present: true}

	case intent.Finance:
		if role != RoleStudent && role != RoleAdmin {
			return Absent
		}
		records, err := g.client.Finance(ctx, studentID)
		if err != nil {
			g.logger.WithError(err).Debug("Finance query failed")
			return Absent
		}
		return Result{Finance: records, present: true}

	default:
		return Absent
	}
}
