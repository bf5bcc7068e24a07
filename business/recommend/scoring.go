package recommend

import (
	"sort"

	"myStyleCrate/domain"
)

const (
	categoryPoints = 30
	colorPoints    = 20
	tagPoints      = 15
	sizePoints     = 10
	maxScore       = 100
)

const (
	ReasonHistoryMatch  = "Based on your purchase history and kept items"
	ReasonStyleMatch    = "Matches your style preferences"
	ReasonActivityBased = "Based on your recent activity"
)

// categoryBodyPart maps categories to the size preference they check
// against. Categories outside this map never score the size bonus.
var categoryBodyPart = map[string]string{
	"Shirts":   "top",
	"Sweaters": "top",
	"Jackets":  "top",
	"Coats":    "top",
	"Pants":    "bottom",
	"Shoes":    "shoe",
}

// ScoreCandidates scores every candidate against the user's top
// preferences and size fit, then returns up to limit results sorted by
// score descending. The sort is stable: equal scores keep the candidate
// pool's original relative order.
func ScoreCandidates(
	prefs domain.TopPreferences,
	sizePrefs domain.SizePreferences,
	candidates []domain.Product,
	limit int,
) []domain.Recommendation {

	if len(candidates) == 0 || limit <= 0 {
		return []domain.Recommendation{}
	}

	topCategories := toSet(prefs.Categories)
	topColors := toSet(prefs.Colors)
	topTags := toSet(prefs.Tags)

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, p := range candidates {
		score := scoreCandidate(p, topCategories, topColors, topTags, sizePrefs)
		recs = append(recs, domain.Recommendation{
			ProductID: p.ID,
			Score:     score,
			Reason:    reasonForScore(score),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if limit > len(recs) {
		limit = len(recs)
	}
	return recs[:limit]
}

func scoreCandidate(
	p domain.Product,
	topCategories, topColors, topTags map[string]struct{},
	sizePrefs domain.SizePreferences,
) int {
	score := 0

	if _, ok := topCategories[p.Category]; ok {
		score += categoryPoints
	}

	for _, c := range p.Colors {
		if _, ok := topColors[c]; ok {
			score += colorPoints
		}
	}

	for _, t := range p.Tags {
		if _, ok := topTags[t]; ok {
			score += tagPoints
		}
	}

	if matchesSizePreference(p, sizePrefs) {
		score += sizePoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// matchesSizePreference checks whether the product stocks the size the
// user prefers for the product category's body part.
func matchesSizePreference(p domain.Product, prefs domain.SizePreferences) bool {
	var want string
	switch categoryBodyPart[p.Category] {
	case "top":
		want = prefs.TopSize
	case "bottom":
		want = prefs.BottomSize
	case "shoe":
		want = prefs.ShoeSize
	default:
		return false
	}
	if want == "" {
		return false
	}

	for _, sz := range p.Sizes {
		if sz.Label == want {
			return true
		}
	}
	return false
}

func reasonForScore(score int) string {
	switch {
	case score > 80:
		return ReasonHistoryMatch
	case score > 60:
		return ReasonStyleMatch
	default:
		return ReasonActivityBased
	}
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
