package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/averill/parley/internal/models"
	"github.com/averill/parley/internal/store"
	"gorm.io/gorm"
)

// DigestReport holds computed metrics for a reporting period.
type DigestReport struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Total         int
	Approved      int
	Rejected      int
	AvgMargin     float64 // over approved runs only
	OvertimeRuns  int
	HighRiskRuns  int
	RecentOutcome []models.NegotiationRun // newest few, for the body
}

// digestRecentLimit caps how many individual runs the digest body lists.
const digestRecentLimit = 5

// BuildDigest queries the store for runs since the cutoff and computes the
// digest report. Returns nil when there was no activity.
func BuildDigest(conn *gorm.DB, since time.Time) (*DigestReport, error) {
	now := time.Now()
	runs, err := store.RunsSince(conn, since)
	if err != nil {
		return nil, fmt.Errorf("notify: build digest: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}

	report := &DigestReport{PeriodStart: since, PeriodEnd: now, Total: len(runs)}
	var marginSum float64
	for _, r := range runs {
		if r.Approved {
			report.Approved++
			marginSum += r.FinalMargin
		} else {
			report.Rejected++
		}
		if r.OvertimeHours > 0 {
			report.OvertimeRuns++
		}
		if r.RiskScore == "High" {
			report.HighRiskRuns++
		}
	}
	if report.Approved > 0 {
		report.AvgMargin = marginSum / float64(report.Approved)
	}

	recent := runs
	if len(recent) > digestRecentLimit {
		recent = recent[len(recent)-digestRecentLimit:]
	}
	report.RecentOutcome = recent
	return report, nil
}

// FormatDigest formats a digest report for chat display.
func FormatDigest(report *DigestReport) Message {
	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("**Period**: %s – %s",
		report.PeriodStart.Format("Jan 2 15:04"),
		report.PeriodEnd.Format("Jan 2 15:04")))
	bodyLines = append(bodyLines, fmt.Sprintf("**Negotiations**: %d (%d approved, %d rejected)",
		report.Total, report.Approved, report.Rejected))
	if report.Approved > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Avg Margin**: %.1f%%", report.AvgMargin))
	}
	if report.OvertimeRuns > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Overtime Runs**: %d", report.OvertimeRuns))
	}
	if report.HighRiskRuns > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**High Risk**: %d", report.HighRiskRuns))
	}

	if len(report.RecentOutcome) > 0 {
		bodyLines = append(bodyLines, "")
		bodyLines = append(bodyLines, "**Recent**:")
		for _, r := range report.RecentOutcome {
			verdict := "approved"
			if !r.Approved {
				verdict = "rejected"
			}
			bodyLines = append(bodyLines, fmt.Sprintf("  %s (%s x%d): %s, risk %s",
				r.OrderID, r.Product, r.Quantity, verdict, shortRisk(r.RiskScore)))
		}
	}

	fields := []Field{
		{Name: "Total", Value: fmt.Sprintf("%d", report.Total), Short: true},
		{Name: "Approved", Value: fmt.Sprintf("%d", report.Approved), Short: true},
		{Name: "Rejected", Value: fmt.Sprintf("%d", report.Rejected), Short: true},
	}
	if report.Approved > 0 {
		fields = append(fields, Field{Name: "Avg Margin", Value: fmt.Sprintf("%.1f%%", report.AvgMargin), Short: true})
	}

	return Message{
		Title:  "Negotiation Digest",
		Body:   strings.Join(bodyLines, "\n"),
		Color:  ColorInfo,
		Fields: fields,
	}
}
