package rest_test

import (
	"encoding/json"
	"testing"

	"myStyleCrate/domain"
	"myStyleCrate/internal/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeListUnmarshalBareLabels(t *testing.T) {
	var sizes rest.SizeList
	require.NoError(t, json.Unmarshal([]byte(`["M", "L", "XL"]`), &sizes))

	assert.Equal(t, rest.SizeList{
		{Label: "M", Quantity: 1},
		{Label: "L", Quantity: 1},
		{Label: "XL", Quantity: 1},
	}, sizes)
}

func TestSizeListUnmarshalObjects(t *testing.T) {
	var sizes rest.SizeList
	require.NoError(t, json.Unmarshal([]byte(`[{"label":"M","quantity":3},{"label":"L","quantity":1}]`), &sizes))

	assert.Equal(t, rest.SizeList{
		{Label: "M", Quantity: 3},
		{Label: "L", Quantity: 1},
	}, sizes)
}

func TestSizeListUnmarshalEmpty(t *testing.T) {
	var sizes rest.SizeList
	require.NoError(t, json.Unmarshal([]byte(`[]`), &sizes))
	assert.Empty(t, sizes)
}

func TestSizeListUnmarshalRejectsOtherShapes(t *testing.T) {
	for _, payload := range []string{`"M"`, `42`, `{"label":"M"}`, `[true]`} {
		var sizes rest.SizeList
		err := json.Unmarshal([]byte(payload), &sizes)
		assert.Error(t, err, "payload %s should not parse", payload)
	}
}

func TestSizeListInsideRequest(t *testing.T) {
	var req rest.CreateProductRequest
	body := `{"name":"Linen Shirt","category":"Shirts","price":45.5,"sizes":["S","M"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, []domain.SizeOption{
		{Label: "S", Quantity: 1},
		{Label: "M", Quantity: 1},
	}, []domain.SizeOption(req.Sizes))
}
