// internal/domain/cart/key_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLineKey_NoSelection(t *testing.T) {
	assert.Equal(t, "TSHIRT-CLASSIC", BuildLineKey("TSHIRT-CLASSIC", nil))
	assert.Equal(t, "TSHIRT-CLASSIC", BuildLineKey("TSHIRT-CLASSIC", map[string]string{}))
}

func TestBuildLineKey_SortsVariantTypes(t *testing.T) {
	key := BuildLineKey("TSHIRT-CLASSIC", map[string]string{
		"Size":  "M",
		"Color": "Black",
	})

	assert.Equal(t, "TSHIRT-CLASSIC::Color-Black;Size-M", key)
}

func TestBuildLineKey_DeterministicAcrossInsertionOrder(t *testing.T) {
	first := map[string]string{"Size": "L", "Color": "Red", "Material": "Cotton"}
	second := map[string]string{"Material": "Cotton", "Color": "Red", "Size": "L"}

	// Map iteration order must never leak into the key; equal selections
	// always merge under one line.
	for i := 0; i < 50; i++ {
		assert.Equal(t, BuildLineKey("SKU-1", first), BuildLineKey("SKU-1", second))
	}
}

func TestBuildLineKey_DifferentSelectionsDiffer(t *testing.T) {
	a := BuildLineKey("SKU-1", map[string]string{"Size": "M"})
	b := BuildLineKey("SKU-1", map[string]string{"Size": "L"})

	assert.NotEqual(t, a, b)
}

func TestBuildLineKey_DifferentProductsDiffer(t *testing.T) {
	selected := map[string]string{"Size": "M"}

	assert.NotEqual(t, BuildLineKey("SKU-1", selected), BuildLineKey("SKU-2", selected))
}
