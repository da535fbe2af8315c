// Package scoring rolls hazards, trainings, inspections and incidents up into
// a normalized safety score per user, site or subcontractor company. Scores are
// computed on demand from persisted facts and never stored.
package scoring

import (
	"sort"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Compute scores every entity of scope for window and ranks them against the
// preceding window of equal length.
func Compute(scope domain.ScoreScope, facts domain.ScoreFacts, window domain.ScoreWindow, weights domain.ScoreWeights) []domain.SafetyScore {
	current := rank(scoreAll(scope, facts, window, weights))
	previous := rank(scoreAll(scope, facts, window.Previous(), weights))

	prevRank := make(map[string]int, len(previous))
	for _, s := range previous {
		prevRank[s.EntityID] = s.Rank
	}
	for i := range current {
		if r, ok := prevRank[current[i].EntityID]; ok {
			current[i].PreviousRank = &r
			current[i].RankChange = r - current[i].Rank
		}
	}
	return current
}

func scoreAll(scope domain.ScoreScope, facts domain.ScoreFacts, w domain.ScoreWindow, weights domain.ScoreWeights) []domain.SafetyScore {
	switch scope {
	case domain.ScopeSite:
		return scoreSites(facts, w, weights)
	case domain.ScopeSubcontractor:
		return scoreSubcontractors(facts, w, weights)
	default:
		return scoreUsers(facts, w, weights)
	}
}

func scoreUsers(facts domain.ScoreFacts, w domain.ScoreWindow, weights domain.ScoreWeights) []domain.SafetyScore {
	scores := make([]domain.SafetyScore, 0, len(facts.Users))
	for _, u := range facts.Users {
		if !u.IsActive {
			continue
		}
		s := scoreEntity(entityFacts{
			hazards:     filter(facts.Hazards, func(f domain.HazardFact) bool { return f.AssigneeID == u.UserID }),
			trainings:   filter(facts.Trainings, func(r domain.TrainingRecord) bool { return r.UserID == u.UserID }),
			inspections: filter(facts.Inspections, func(i domain.Inspection) bool { return i.AssigneeID == u.UserID }),
			incidents:   filter(facts.Incidents, func(i domain.IncidentReport) bool { return involves(i, u.UserID) }),
		}, w, weights)
		s.Scope, s.EntityID, s.EntityName = domain.ScopeUser, u.UserID, u.Name
		scores = append(scores, s)
	}
	return scores
}

func scoreSites(facts domain.ScoreFacts, w domain.ScoreWindow, weights domain.ScoreWeights) []domain.SafetyScore {
	scores := make([]domain.SafetyScore, 0, len(facts.Sites))
	for _, site := range facts.Sites {
		if !site.IsActive {
			continue
		}
		members := make(map[string]bool)
		for _, sr := range facts.SiteRoles {
			if sr.SiteID == site.SiteID && sr.Overlaps(w.From, w.To) {
				members[sr.UserID] = true
			}
		}
		s := scoreEntity(entityFacts{
			hazards:     filter(facts.Hazards, func(f domain.HazardFact) bool { return f.SiteID == site.SiteID }),
			trainings:   filter(facts.Trainings, func(r domain.TrainingRecord) bool { return members[r.UserID] }),
			inspections: filter(facts.Inspections, func(i domain.Inspection) bool { return i.SiteID == site.SiteID }),
			incidents:   filter(facts.Incidents, func(i domain.IncidentReport) bool { return i.SiteID == site.SiteID }),
		}, w, weights)
		s.Scope, s.EntityID, s.EntityName = domain.ScopeSite, site.SiteID, site.Name
		scores = append(scores, s)
	}
	return scores
}

// scoreSubcontractors groups subcontractor users by company. The group score is
// the average of member scores weighted by how many site assignments each
// member held during the window (at least 1), so one very active member does
// not dominate a large crew.
func scoreSubcontractors(facts domain.ScoreFacts, w domain.ScoreWindow, weights domain.ScoreWeights) []domain.SafetyScore {
	population := make(map[string]int64)
	for _, sr := range facts.SiteRoles {
		if sr.Overlaps(w.From, w.To) {
			population[sr.UserID]++
		}
	}

	userScores := make(map[string]domain.SafetyScore)
	for _, s := range scoreUsers(facts, w, weights) {
		userScores[s.EntityID] = s
	}

	type group struct {
		name    string
		members []string
	}
	groups := make(map[string]*group)
	var keys []string
	for _, u := range facts.Users {
		company := strings.TrimSpace(u.CompanyName)
		if !u.IsActive || u.Role != domain.RoleSubcontractor || company == "" {
			continue
		}
		key := strings.ToLower(company)
		g, ok := groups[key]
		if !ok {
			g = &group{name: company}
			groups[key] = g
			keys = append(keys, key)
		}
		g.members = append(g.members, u.UserID)
	}

	scores := make([]domain.SafetyScore, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		weighted, totalWeight := decimal.Zero, decimal.Zero
		dataPoints := 0
		for _, id := range g.members {
			us := userScores[id]
			pw := population[id]
			if pw < 1 {
				pw = 1
			}
			wd := decimal.NewFromInt(pw)
			weighted = weighted.Add(us.Score.Mul(wd))
			totalWeight = totalWeight.Add(wd)
			dataPoints += us.DataPoints
		}
		score := hundred
		if totalWeight.IsPositive() {
			score = weighted.Div(totalWeight).Round(2)
		}
		scores = append(scores, domain.SafetyScore{
			Scope:      domain.ScopeSubcontractor,
			EntityID:   key,
			EntityName: g.name,
			Score:      score,
			DataPoints: dataPoints,
		})
	}
	return scores
}

type entityFacts struct {
	hazards     []domain.HazardFact
	trainings   []domain.TrainingRecord
	inspections []domain.Inspection
	incidents   []domain.IncidentReport
}

func scoreEntity(f entityFacts, w domain.ScoreWindow, weights domain.ScoreWeights) domain.SafetyScore {
	var c domain.ScoreComponents
	var n, points int
	c.HazardTimeliness, n = hazardTimeliness(f.hazards, w)
	points += n
	c.TrainingCompletion, n = trainingCompletion(f.trainings, w)
	points += n
	c.InspectionCompliance, n = inspectionCompliance(f.inspections, w)
	points += n
	c.IncidentInverse, n = incidentInverse(f.incidents, w)
	points += n

	return domain.SafetyScore{
		Score:      Combine(c, weights),
		Components: c,
		DataPoints: points,
	}
}

// rank assigns dense ranks by score descending. Ties share a rank and are
// ordered by name, then id.
func rank(scores []domain.SafetyScore) []domain.SafetyScore {
	sort.SliceStable(scores, func(i, j int) bool {
		if c := scores[i].Score.Cmp(scores[j].Score); c != 0 {
			return c > 0
		}
		if scores[i].EntityName != scores[j].EntityName {
			return scores[i].EntityName < scores[j].EntityName
		}
		return scores[i].EntityID < scores[j].EntityID
	})
	r := 0
	for i := range scores {
		if i == 0 || !scores[i].Score.Equal(scores[i-1].Score) {
			r++
		}
		scores[i].Rank = r
	}
	return scores
}

func involves(i domain.IncidentReport, userID string) bool {
	for _, id := range i.InvolvedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
