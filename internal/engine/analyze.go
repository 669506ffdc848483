package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/pkg/textutil"
)

// Analysis is the outcome of an insight query.
type Analysis struct {
	Analysis  string   `json:"analysis"`
	Insights  []string `json:"insights"`
	RiskLevel string   `json:"risk_level"`
}

// unavailableAnalysis is returned for unknown query types and for any
// upstream failure.
func unavailableAnalysis() Analysis {
	return Analysis{
		Analysis:  "Unable to fetch data at this time. Please try again later.",
		Insights:  []string{},
		RiskLevel: "unknown",
	}
}

// Analyze computes insights over campus data for the given query type.
// Supported types are "attendance" and "placements"; anything else, and any
// fetch failure, yields the unavailable analysis.
func (e *Engine) Analyze(ctx context.Context, queryType, userID string) Analysis {
	switch queryType {
	case "attendance":
		records, err := e.gateway.Client().Attendance(ctx, userID)
		if err != nil || len(records) == 0 {
			e.logger.WithError(err).Debug("Attendance analysis unavailable")
			return unavailableAnalysis()
		}
		return attendanceAnalysis(records)

	case "placements":
		drives, err := e.gateway.Client().OpenPlacements(ctx)
		if err != nil || len(drives) == 0 {
			e.logger.WithError(err).Debug("Placement analysis unavailable")
			return unavailableAnalysis()
		}
		return placementAnalysis(drives)

	default:
		return unavailableAnalysis()
	}
}

func attendanceAnalysis(records []campus.SubjectAttendance) Analysis {
	var sum float64
	var low []string
	for _, rec := range records {
		sum += rec.Percentage
		if rec.Percentage < textutil.AttendanceGoodThreshold {
			low = append(low, rec.Subject)
		}
	}
	avg := sum / float64(len(records))

	lowLine := "All subjects above 75% ✅"
	if len(low) > 0 {
		lowLine = "Low attendance in: " + strings.Join(low, ", ")
	}

	risk := "low"
	switch {
	case avg < 75:
		risk = "high"
	case avg < 85:
		risk = "medium"
	}

	return Analysis{
		Analysis: fmt.Sprintf("Your average attendance is %s.", textutil.Percent(avg)),
		Insights: []string{
			lowLine,
			fmt.Sprintf("Total subjects tracked: %d", len(records)),
		},
		RiskLevel: risk,
	}
}

func placementAnalysis(drives []campus.PlacementDrive) Analysis {
	companies := make([]string, 0, maxListedItems)
	for _, d := range drives[:min(len(drives), maxListedItems)] {
		companies = append(companies, d.Company)
	}

	best := drives[0]
	bestValue := ctcValue(best.CTC)
	for _, d := range drives[1:] {
		if v := ctcValue(d.CTC); v > bestValue {
			best, bestValue = d, v
		}
	}

	return Analysis{
		Analysis: fmt.Sprintf("There are %d active placement drives.", len(drives)),
		Insights: []string{
			"Companies: " + strings.Join(companies, ", "),
			"Highest CTC: " + best.CTC,
		},
		RiskLevel: "info",
	}
}

// ctcValue extracts a comparable number from a free-form CTC string by
// stripping everything but digits and dots. Unparseable strings rank as
// zero.
func ctcValue(ctc string) float64 {
	var b strings.Builder
	for _, r := range ctc {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
