package recommend_test

import (
	"testing"

	"myStyleCrate/business/recommend"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sized(p domain.Product, labels ...string) domain.Product {
	sizes := make([]domain.SizeOption, 0, len(labels))
	for _, l := range labels {
		sizes = append(sizes, domain.SizeOption{Label: l, Quantity: 1})
	}
	p.Sizes = datatypes.NewJSONSlice(sizes)
	return p
}

func TestScoreCandidatesComponentSum(t *testing.T) {
	prefs := domain.TopPreferences{
		Categories: []string{"Shirts"},
		Colors:     []string{"Black"},
		Tags:       []string{"formal"},
	}
	sizePrefs := domain.SizePreferences{TopSize: "M"}

	// category 30 + one color 20 + no tag + size 10 = 60
	candidate := sized(domain.Product{
		ID:       1,
		Category: "Shirts",
		Colors:   datatypes.NewJSONSlice([]string{"Black"}),
		Tags:     datatypes.NewJSONSlice([]string{"casual"}),
	}, "M", "L")

	recs := recommend.ScoreCandidates(prefs, sizePrefs, []domain.Product{candidate}, 5)
	require.Len(t, recs, 1)

	assert.Equal(t, uint64(1), recs[0].ProductID)
	assert.Equal(t, 60, recs[0].Score)
	assert.Equal(t, recommend.ReasonActivityBased, recs[0].Reason)
}

func TestScoreCandidatesReasonThresholds(t *testing.T) {
	prefs := domain.TopPreferences{
		Categories: []string{"Shirts"},
		Colors:     []string{"Black"},
		Tags:       []string{"formal"},
	}
	sizePrefs := domain.SizePreferences{TopSize: "M"}

	// 30 + 20 + 15 + 10 = 75, inside the style-match band
	styleMatch := sized(domain.Product{
		ID:       1,
		Category: "Shirts",
		Colors:   datatypes.NewJSONSlice([]string{"Black"}),
		Tags:     datatypes.NewJSONSlice([]string{"formal"}),
	}, "M")

	recs := recommend.ScoreCandidates(prefs, sizePrefs, []domain.Product{styleMatch}, 1)
	require.Len(t, recs, 1)
	assert.Equal(t, 75, recs[0].Score)
	assert.Equal(t, recommend.ReasonStyleMatch, recs[0].Reason)
}

func TestScoreCandidatesClampsAtHundred(t *testing.T) {
	prefs := domain.TopPreferences{
		Categories: []string{"Shirts"},
		Colors:     []string{"Black", "White"},
		Tags:       []string{"formal", "office", "slim"},
	}
	sizePrefs := domain.SizePreferences{TopSize: "M"}

	// 30 + 2*20 + 3*15 + 10 = 125, clamped to 100
	maxed := sized(domain.Product{
		ID:       1,
		Category: "Shirts",
		Colors:   datatypes.NewJSONSlice([]string{"Black", "White"}),
		Tags:     datatypes.NewJSONSlice([]string{"formal", "office", "slim"}),
	}, "M")

	recs := recommend.ScoreCandidates(prefs, sizePrefs, []domain.Product{maxed}, 1)
	require.Len(t, recs, 1)
	assert.Equal(t, 100, recs[0].Score)
	assert.Equal(t, recommend.ReasonHistoryMatch, recs[0].Reason)
}

func TestScoreCandidatesSizeBonusByBodyPart(t *testing.T) {
	prefs := domain.TopPreferences{}
	sizePrefs := domain.SizePreferences{TopSize: "M", BottomSize: "32", ShoeSize: "42"}

	cases := []struct {
		name    string
		product domain.Product
		want    int
	}{
		{"shirt stocks top size", sized(domain.Product{ID: 1, Category: "Shirts"}, "M"), 10},
		{"pants stock bottom size", sized(domain.Product{ID: 2, Category: "Pants"}, "32"), 10},
		{"shoes stock shoe size", sized(domain.Product{ID: 3, Category: "Shoes"}, "42"), 10},
		{"shirt misses top size", sized(domain.Product{ID: 4, Category: "Shirts"}, "XL"), 0},
		{"accessories never score size", sized(domain.Product{ID: 5, Category: "Accessories"}, "M"), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := recommend.ScoreCandidates(prefs, sizePrefs, []domain.Product{tc.product}, 1)
			require.Len(t, recs, 1)
			assert.Equal(t, tc.want, recs[0].Score)
		})
	}
}

func TestScoreCandidatesStableOrderOnTies(t *testing.T) {
	prefs := domain.TopPreferences{Categories: []string{"Shirts"}}

	first := domain.Product{ID: 10, Category: "Pants"}
	second := domain.Product{ID: 11, Category: "Pants"}
	winner := domain.Product{ID: 12, Category: "Shirts"}

	recs := recommend.ScoreCandidates(prefs, domain.SizePreferences{}, []domain.Product{first, second, winner}, 3)
	require.Len(t, recs, 3)

	assert.Equal(t, uint64(12), recs[0].ProductID)
	// zero-score ties keep candidate order
	assert.Equal(t, uint64(10), recs[1].ProductID)
	assert.Equal(t, uint64(11), recs[2].ProductID)
}

func TestScoreCandidatesLimit(t *testing.T) {
	prefs := domain.TopPreferences{}
	candidates := []domain.Product{{ID: 1}, {ID: 2}, {ID: 3}}

	recs := recommend.ScoreCandidates(prefs, domain.SizePreferences{}, candidates, 2)
	assert.Len(t, recs, 2)

	recs = recommend.ScoreCandidates(prefs, domain.SizePreferences{}, candidates, 0)
	assert.Empty(t, recs)

	recs = recommend.ScoreCandidates(prefs, domain.SizePreferences{}, nil, 5)
	assert.Empty(t, recs)
}
