package scoring

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// IncidentWeight is the contribution of one incident to the incident sum.
var IncidentWeight = map[domain.IncidentSeverity]int64{
	domain.IncidentMinor:    1,
	domain.IncidentModerate: 2,
	domain.IncidentMajor:    4,
	domain.IncidentCritical: 8,
}

// hazardTimeliness is resolved-on-time / (resolved + overdue at window end)
// over assignments due inside the window.
func hazardTimeliness(facts []domain.HazardFact, w domain.ScoreWindow) (*decimal.Decimal, int) {
	var onTime, counted int64
	for _, f := range facts {
		if !w.Contains(f.DueDate) {
			continue
		}
		if f.ResolvedAt != nil && f.ResolvedAt.Before(w.To) {
			counted++
			if !f.ResolvedAt.After(f.DueDate) {
				onTime++
			}
			continue
		}
		if f.DueDate.Before(w.To) {
			counted++
		}
	}
	return ratio(onTime, counted), int(counted)
}

// trainingCompletion is completed / assigned over records due inside the window.
func trainingCompletion(records []domain.TrainingRecord, w domain.ScoreWindow) (*decimal.Decimal, int) {
	var done, total int64
	for _, r := range records {
		if !w.Contains(r.DueDate) {
			continue
		}
		total++
		if r.Status == domain.TrainingCompleted && r.CompletedAt != nil && r.CompletedAt.Before(w.To) {
			done++
		}
	}
	return ratio(done, total), int(total)
}

// inspectionCompliance is the mean score / 100 of inspections completed inside the window.
func inspectionCompliance(inspections []domain.Inspection, w domain.ScoreWindow) (*decimal.Decimal, int) {
	sum := decimal.Zero
	var n int64
	for _, i := range inspections {
		if i.Status != domain.InspectionCompleted || i.Score == nil || i.CompletedAt == nil || !w.Contains(*i.CompletedAt) {
			continue
		}
		sum = sum.Add(*i.Score)
		n++
	}
	if n == 0 {
		return nil, 0
	}
	v := sum.Div(decimal.NewFromInt(n)).Div(hundred)
	return &v, int(n)
}

// incidentInverse is 1 / (1 + sum of severity weights) over incidents inside the window.
func incidentInverse(incidents []domain.IncidentReport, w domain.ScoreWindow) (*decimal.Decimal, int) {
	var weight, n int64
	for _, i := range incidents {
		if !w.Contains(i.OccurredAt) {
			continue
		}
		n++
		sev, ok := IncidentWeight[i.Severity]
		if !ok {
			sev = 1
		}
		weight += sev
	}
	if n == 0 {
		return nil, 0
	}
	v := one.Div(decimal.NewFromInt(1 + weight))
	return &v, int(n)
}

func ratio(num, den int64) *decimal.Decimal {
	if den == 0 {
		return nil
	}
	v := decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
	return &v
}

// Combine averages the present components with their weights, renormalising
// over the components that have data. No data, or zero total weight, yields 100.
func Combine(c domain.ScoreComponents, weights domain.ScoreWeights) decimal.Decimal {
	pairs := []struct {
		value  *decimal.Decimal
		weight decimal.Decimal
	}{
		{c.HazardTimeliness, weights.HazardTimeliness},
		{c.TrainingCompletion, weights.TrainingCompletion},
		{c.InspectionCompliance, weights.InspectionCompliance},
		{c.IncidentInverse, weights.IncidentInverse},
	}

	sum, total := decimal.Zero, decimal.Zero
	for _, p := range pairs {
		if p.value == nil || !p.weight.IsPositive() {
			continue
		}
		sum = sum.Add(p.value.Mul(p.weight))
		total = total.Add(p.weight)
	}
	if total.IsZero() {
		return hundred
	}
	return sum.Div(total).Mul(hundred).Round(2)
}
