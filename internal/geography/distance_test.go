package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	sanaa := Coordinate{Lat: 15.3694, Lon: 44.1910}
	aden := Coordinate{Lat: 12.7797, Lon: 45.0095}

	t.Run("known distance", func(t *testing.T) {
		d := Haversine(sanaa, aden)
		assert.InDelta(t, 301, d, 5, "Sana'a to Aden is roughly 300km")
	})

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(sanaa, sanaa))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, Haversine(sanaa, aden), Haversine(aden, sanaa), 1e-9)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		d := Haversine(Coordinate{0, 0}, Coordinate{0, 1})
		assert.InDelta(t, 111.195, d, 0.01)
	})
}
