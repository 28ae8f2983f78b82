// internal/domain/catalog/pricing_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tshirtGroups() []VariantGroup {
	return []VariantGroup{
		{
			Name: "Size",
			Options: []VariantOption{
				{Value: "S"},
				{Value: "M"},
				{Value: "XL", AdditionalPrice: 200},
			},
		},
		{
			Name: "Color",
			Options: []VariantOption{
				{Value: "Black"},
				{Value: "Forest", AdditionalPrice: 100},
			},
		},
	}
}

func TestResolveUnitPrice_BasePriceWithoutSelection(t *testing.T) {
	assert.Equal(t, int64(1000), ResolveUnitPrice(1000, tshirtGroups(), nil))
	assert.Equal(t, int64(1000), ResolveUnitPrice(1000, nil, map[string]string{"Size": "XL"}))
}

func TestResolveUnitPrice_AddsOptionDelta(t *testing.T) {
	price := ResolveUnitPrice(1000, tshirtGroups(), map[string]string{"Size": "XL", "Color": "Black"})

	assert.Equal(t, int64(1200), price)
}

func TestResolveUnitPrice_SumsDeltasAcrossGroups(t *testing.T) {
	price := ResolveUnitPrice(1000, tshirtGroups(), map[string]string{"Size": "XL", "Color": "Forest"})

	assert.Equal(t, int64(1300), price)
}

func TestResolveUnitPrice_ZeroDeltaOption(t *testing.T) {
	price := ResolveUnitPrice(1000, tshirtGroups(), map[string]string{"Size": "M", "Color": "Black"})

	assert.Equal(t, int64(1000), price)
}

func TestResolveUnitPrice_UnknownTypeIgnored(t *testing.T) {
	price := ResolveUnitPrice(1000, tshirtGroups(), map[string]string{"Material": "Wool"})

	assert.Equal(t, int64(1000), price)
}

func TestResolveUnitPrice_UnknownValueIgnored(t *testing.T) {
	price := ResolveUnitPrice(1000, tshirtGroups(), map[string]string{"Size": "XXXL"})

	assert.Equal(t, int64(1000), price)
}
