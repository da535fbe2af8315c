package compliance

import (
	"sort"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Evaluation is the outcome of checking a full response set against its checklist.
type Evaluation struct {
	Score    decimal.Decimal
	Matches  int
	Total    int
	Failures []domain.ChecklistItem // Critical items whose answer did not match
}

// AnswerMatches compares an answer with the expected answer, ignoring case and
// surrounding whitespace.
func AnswerMatches(answer, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}

// MissingResponses returns the ids of items without a response, in checklist order.
func MissingResponses(items []domain.ChecklistItem, responses []domain.InspectionResponse) []string {
	answered := make(map[string]bool, len(responses))
	for _, r := range responses {
		answered[r.ItemID] = true
	}
	ordered := sortedItems(items)
	missing := make([]string, 0)
	for _, item := range ordered {
		if !answered[item.ItemID] {
			missing = append(missing, item.ItemID)
		}
	}
	return missing
}

// Evaluate scores responses against items. Score is 100 * matches / total,
// rounded to two places. A failure is reported for every critical item whose
// answer differs from the expected answer. Responses to unknown items are ignored.
func Evaluate(items []domain.ChecklistItem, responses []domain.InspectionResponse) Evaluation {
	byItem := make(map[string]domain.InspectionResponse, len(responses))
	for _, r := range responses {
		byItem[r.ItemID] = r
	}

	eval := Evaluation{Score: decimal.Zero, Failures: make([]domain.ChecklistItem, 0)}
	for _, item := range sortedItems(items) {
		r, ok := byItem[item.ItemID]
		if !ok {
			continue
		}
		eval.Total++
		if AnswerMatches(r.Answer, item.ExpectedAnswer) {
			eval.Matches++
			continue
		}
		if item.IsCritical {
			eval.Failures = append(eval.Failures, item)
		}
	}

	if eval.Total > 0 {
		eval.Score = decimal.NewFromInt(int64(eval.Matches)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(eval.Total))).
			Round(2)
	}
	return eval
}

func sortedItems(items []domain.ChecklistItem) []domain.ChecklistItem {
	ordered := append([]domain.ChecklistItem(nil), items...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	return ordered
}
