// Package advisor implements the standalone numeric advice routines: the
// attendance safe-leave estimator and the library renewal advisor. Both
// operate on pre-fetched data and are invoked directly by the transport
// layer, not by the chat pipeline.
package advisor

import (
	"fmt"
	"math"
	"strings"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/pkg/textutil"
)

// DefaultMinAttendance is the minimum attendance threshold applied when the
// caller does not supply one.
const DefaultMinAttendance = 75.0

// maxSimulatedClasses bounds the recovery simulation. When the threshold is
// not reached within this many simulated classes, the advice reports the cap
// itself rather than a failure state.
const maxSimulatedClasses = 100

// SafeLeaves returns the maximum number of additional absences that keeps
// attended/(total+x) at or above minPercent, clamped to zero. Closed form:
// x = floor((attended - (minPercent/100)*total) / (minPercent/100)). A
// nonpositive threshold never constrains absences; the result is then the
// same bound the recovery simulation uses.
func SafeLeaves(attended, total int, minPercent float64) int {
	ratio := minPercent / 100
	if ratio <= 0 {
		return maxSimulatedClasses
	}
	leaves := int(math.Floor((float64(attended) - ratio*float64(total)) / ratio))
	if leaves < 0 {
		return 0
	}
	return leaves
}

// ClassesNeeded simulates attending consecutive classes (each increments
// both attended and total) until the running percentage reaches minPercent,
// returning the count of classes needed, capped at maxSimulatedClasses.
func ClassesNeeded(attended, total int, minPercent float64) int {
	needed := 0
	simAttended := attended
	simTotal := total
	for float64(simAttended)/float64(simTotal)*100 < minPercent && needed < maxSimulatedClasses {
		simAttended++
		simTotal++
		needed++
	}
	return needed
}

// BuildLeaveAdvice renders per-subject leave advice from an attendance
// summary. Subjects with zero total classes are skipped.
func BuildLeaveAdvice(summary *campus.AttendanceSummary, minPercent float64) string {
	lines := []string{
		fmt.Sprintf("📊 Your overall attendance: %s", textutil.Percent(summary.Overall)),
	}
	if summary.Overall < minPercent {
		lines = append(lines, fmt.Sprintf(
			"⚠️ Your overall attendance is below the minimum %g%%. You should NOT take any more leaves.",
			minPercent))
	}

	for _, subj := range summary.SubjectWise {
		if subj.Total == 0 {
			continue
		}

		name := subj.Subject
		if name == "" {
			name = "Unknown"
		}

		if subj.Percentage >= minPercent {
			lines = append(lines, fmt.Sprintf(
				"📘 %s: %s — You can safely skip %d more class(es).",
				name, textutil.Percent(subj.Percentage),
				SafeLeaves(subj.Attended, subj.Total, minPercent)))
		} else {
			lines = append(lines, fmt.Sprintf(
				"📘 %s: %s ❌ Below minimum! Attend next %d class(es) without fail.",
				name, textutil.Percent(subj.Percentage),
				ClassesNeeded(subj.Attended, subj.Total, minPercent)))
		}
	}

	return strings.Join(lines, "\n")
}
