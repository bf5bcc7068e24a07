package marketplace_test

import (
	"testing"

	"myStyleCrate/business/marketplace"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func returnedProduct() domain.Product {
	return domain.Product{
		ID:          7,
		Name:        "Wool Coat",
		Category:    "Coats",
		Description: "Mid-length wool coat",
		Price:       50.0,
		Colors:      datatypes.NewJSONSlice([]string{"Camel", "Black"}),
		Tags:        datatypes.NewJSONSlice([]string{"winter", "formal"}),
		Images:      datatypes.NewJSONSlice([]string{"coat-front.jpg", "coat-back.jpg"}),
		ModelURL:    "https://models.example.com/coat.glb",
		Sizes: datatypes.NewJSONSlice([]domain.SizeOption{
			{Label: "M", Quantity: 4},
			{Label: "L", Quantity: 2},
		}),
		Status: domain.ProductStatusActive,
	}
}

func TestConvertReturnToListing(t *testing.T) {
	original := returnedProduct()

	listing, err := marketplace.ConvertReturnToListing(original)
	require.NoError(t, err)

	assert.InDelta(t, 30.0, listing.Price, 1e-9)
	assert.InDelta(t, 50.0, listing.OriginalPrice, 1e-9)
	assert.Equal(t, "Very Good", listing.Condition)
	assert.True(t, listing.IsSecondHand)
	assert.True(t, listing.FromSubscription)
	assert.Equal(t, domain.ProductStatusActive, listing.Status)
	assert.Equal(t, 250, listing.RewardPoints)
	assert.NotEmpty(t, listing.SKU)
	assert.NotEqual(t, original.SKU, listing.SKU)

	// descriptive fields carry over verbatim
	assert.Equal(t, original.Name, listing.Name)
	assert.Equal(t, original.Category, listing.Category)
	assert.Equal(t, original.Description, listing.Description)
	assert.Equal(t, original.Colors, listing.Colors)
	assert.Equal(t, original.Tags, listing.Tags)
	assert.Equal(t, original.Images, listing.Images)
	assert.Equal(t, original.ModelURL, listing.ModelURL)

	// sizes collapse to the first original label with quantity 1
	require.Len(t, listing.Sizes, 1)
	assert.Equal(t, "M", listing.Sizes[0].Label)
	assert.Equal(t, 1, listing.Sizes[0].Quantity)
}

func TestConvertReturnToListingUniqueSKUs(t *testing.T) {
	original := returnedProduct()

	first, err := marketplace.ConvertReturnToListing(original)
	require.NoError(t, err)
	second, err := marketplace.ConvertReturnToListing(original)
	require.NoError(t, err)

	assert.NotEqual(t, first.SKU, second.SKU)
}

func TestConvertReturnToListingNoSizes(t *testing.T) {
	original := returnedProduct()
	original.Sizes = nil

	_, err := marketplace.ConvertReturnToListing(original)
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestRewardAsymmetry(t *testing.T) {
	original := returnedProduct()

	listing, err := marketplace.ConvertReturnToListing(original)
	require.NoError(t, err)

	returnerPoints := marketplace.ReturnerRewardPoints(original.Price)

	assert.Equal(t, 250, listing.RewardPoints)
	assert.Equal(t, 500, returnerPoints)
	assert.Equal(t, 2*listing.RewardPoints, returnerPoints)
}

func TestReturnerRewardPointsRounds(t *testing.T) {
	assert.Equal(t, 500, marketplace.ReturnerRewardPoints(50.0))
	assert.Equal(t, 300, marketplace.ReturnerRewardPoints(29.99))
	assert.Equal(t, 0, marketplace.ReturnerRewardPoints(0))
}
