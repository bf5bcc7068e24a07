package recommend

import (
	"sort"

	"myStyleCrate/domain"
)

const (
	likedItemWeight = 2
	swipeWeight     = 1
	topK            = 3
)

// WeightMap accumulates label weights while remembering first-encounter
// order. Top-K ties break by that order, which keeps results deterministic
// for deterministic input iteration; a plain map would not.
type WeightMap struct {
	keys    []string
	weights map[string]int
}

func NewWeightMap() *WeightMap {
	return &WeightMap{weights: make(map[string]int)}
}

func (m *WeightMap) Add(key string, w int) {
	if key == "" {
		return
	}
	if _, ok := m.weights[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.weights[key] += w
}

func (m *WeightMap) Weight(key string) int {
	return m.weights[key]
}

func (m *WeightMap) Len() int {
	return len(m.keys)
}

// TopK returns the k highest-weighted keys. The sort is stable over
// insertion order, so equal weights keep first-encountered precedence.
func (m *WeightMap) TopK(k int) []string {
	ranked := make([]string, len(m.keys))
	copy(ranked, m.keys)

	sort.SliceStable(ranked, func(i, j int) bool {
		return m.weights[ranked[i]] > m.weights[ranked[j]]
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// AggregatePreferences folds a user's liked items and swipe history into
// weighted category/color/tag vectors. A liked catalog item contributes
// +2 to each of its labels; a positively swiped item contributes +1. An
// item that is both liked and positively swiped counts 3: two independent
// signals, double counting intended. Disliked swipes contribute nothing.
func AggregatePreferences(
	liked []domain.Product,
	swipes []domain.SwipeRecord,
	swipedProducts map[uint64]domain.Product,
) (categories, colors, tags *WeightMap) {

	categories = NewWeightMap()
	colors = NewWeightMap()
	tags = NewWeightMap()

	add := func(p domain.Product, w int) {
		categories.Add(p.Category, w)
		for _, c := range p.Colors {
			colors.Add(c, w)
		}
		for _, t := range p.Tags {
			tags.Add(t, w)
		}
	}

	for _, p := range liked {
		add(p, likedItemWeight)
	}

	for _, sw := range swipes {
		if !sw.Liked {
			continue
		}
		p, ok := swipedProducts[sw.ProductID]
		if !ok {
			continue
		}
		add(p, swipeWeight)
	}

	return categories, colors, tags
}

// TopPreferences reduces the full vectors to the top-3 labels each.
func TopPreferences(categories, colors, tags *WeightMap) domain.TopPreferences {
	return domain.TopPreferences{
		Categories: categories.TopK(topK),
		Colors:     colors.TopK(topK),
		Tags:       tags.TopK(topK),
	}
}
