package recommend_test

import (
	"testing"

	"myStyleCrate/business/recommend"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func shirt(id uint64, colors, tags []string) domain.Product {
	return domain.Product{
		ID:       id,
		Category: "Shirts",
		Colors:   datatypes.NewJSONSlice(colors),
		Tags:     datatypes.NewJSONSlice(tags),
	}
}

func TestAggregatePreferencesWeights(t *testing.T) {
	likedShirt := shirt(1, []string{"Black"}, []string{"casual"})
	pants := domain.Product{
		ID:       2,
		Category: "Pants",
		Colors:   datatypes.NewJSONSlice([]string{"Blue"}),
		Tags:     datatypes.NewJSONSlice([]string{"denim"}),
	}
	jacket := domain.Product{
		ID:       3,
		Category: "Jackets",
		Colors:   datatypes.NewJSONSlice([]string{"Green"}),
	}

	liked := []domain.Product{likedShirt}
	swipes := []domain.SwipeRecord{
		{UserID: 9, ProductID: 1, Liked: true},  // same shirt, both signals count
		{UserID: 9, ProductID: 2, Liked: true},  // positive swipe on pants
		{UserID: 9, ProductID: 3, Liked: false}, // dislikes contribute nothing
	}
	swipedProducts := map[uint64]domain.Product{
		1: likedShirt,
		2: pants,
		3: jacket,
	}

	categories, colors, tags := recommend.AggregatePreferences(liked, swipes, swipedProducts)

	assert.Equal(t, 3, categories.Weight("Shirts"))
	assert.Equal(t, 1, categories.Weight("Pants"))
	assert.Equal(t, 0, categories.Weight("Jackets"))

	assert.Equal(t, 3, colors.Weight("Black"))
	assert.Equal(t, 1, colors.Weight("Blue"))
	assert.Equal(t, 0, colors.Weight("Green"))

	assert.Equal(t, 3, tags.Weight("casual"))
	assert.Equal(t, 1, tags.Weight("denim"))
}

func TestAggregatePreferencesMissingSwipedProduct(t *testing.T) {
	swipes := []domain.SwipeRecord{{UserID: 1, ProductID: 99, Liked: true}}

	categories, colors, tags := recommend.AggregatePreferences(nil, swipes, map[uint64]domain.Product{})

	assert.Zero(t, categories.Len())
	assert.Zero(t, colors.Len())
	assert.Zero(t, tags.Len())
}

func TestWeightMapIgnoresEmptyLabels(t *testing.T) {
	m := recommend.NewWeightMap()
	m.Add("", 5)
	m.Add("Shirts", 1)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Weight(""))
}

func TestWeightMapTopKTieBreak(t *testing.T) {
	m := recommend.NewWeightMap()
	m.Add("a", 1)
	m.Add("b", 1)
	m.Add("c", 2)

	// highest weight first, then first-encountered order among ties
	assert.Equal(t, []string{"c", "a"}, m.TopK(2))
	assert.Equal(t, []string{"c", "a", "b"}, m.TopK(3))
}

func TestWeightMapTopKBeyondLen(t *testing.T) {
	m := recommend.NewWeightMap()
	m.Add("only", 1)

	assert.Equal(t, []string{"only"}, m.TopK(10))
}

func TestTopPreferencesReducesToThree(t *testing.T) {
	categories := recommend.NewWeightMap()
	for _, c := range []string{"Shirts", "Pants", "Shoes", "Coats"} {
		categories.Add(c, 1)
	}
	categories.Add("Shirts", 5)

	prefs := recommend.TopPreferences(categories, recommend.NewWeightMap(), recommend.NewWeightMap())

	require.Len(t, prefs.Categories, 3)
	assert.Equal(t, "Shirts", prefs.Categories[0])
	assert.Empty(t, prefs.Colors)
	assert.Empty(t, prefs.Tags)
}
