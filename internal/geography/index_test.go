package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegions() []Region {
	return []Region{
		{ID: "Sana'a", Centroid: &Coordinate{Lat: 15.3694, Lon: 44.1910}},
		{ID: "Aden", Centroid: &Coordinate{Lat: 12.7797, Lon: 45.0095}},
		{ID: "Taizz", Centroid: &Coordinate{Lat: 13.5789, Lon: 44.0219}},
		{ID: "Socotra"}, // no geometry
	}
}

func TestNewIndex(t *testing.T) {
	ix := NewIndex(testRegions(), nil)

	assert.Equal(t, 4, ix.Len())
	assert.Equal(t, []string{"aden", "sana'a", "socotra", "ta'izz"}, ix.IDs())
}

func TestIndexResolve(t *testing.T) {
	ix := NewIndex(testRegions(), nil)

	id, ok := ix.Resolve("Ta'izz Governorate")
	assert.True(t, ok)
	assert.Equal(t, "ta'izz", id)

	id, ok = ix.Resolve("Mukalla")
	assert.False(t, ok, "names absent from geometry must be reported, not silently passed through")
	assert.Equal(t, "mukalla", id)
}

func TestIndexCentroid(t *testing.T) {
	ix := NewIndex(testRegions(), nil)

	c, ok := ix.Centroid("aden")
	require.True(t, ok)
	assert.InDelta(t, 12.7797, c.Lat, 1e-9)

	_, ok = ix.Centroid("socotra")
	assert.False(t, ok, "regions without geometry have no centroid")

	_, ok = ix.Centroid("nowhere")
	assert.False(t, ok)
}

func TestIndexDistance(t *testing.T) {
	ix := NewIndex(testRegions(), nil)

	d, ok := ix.Distance("sana'a", "aden")
	require.True(t, ok)
	assert.InDelta(t, 301, d, 5)

	_, ok = ix.Distance("sana'a", "socotra")
	assert.False(t, ok)
}

func TestIndexDuplicateNormalization(t *testing.T) {
	ix := NewIndex([]Region{
		{ID: "Taizz", Centroid: &Coordinate{Lat: 13.5789, Lon: 44.0219}},
		{ID: "Ta'izz Governorate"}, // same region after normalization
	}, nil)

	assert.Equal(t, 1, ix.Len())
	_, ok := ix.Centroid("ta'izz")
	assert.True(t, ok, "first occurrence wins")
}
