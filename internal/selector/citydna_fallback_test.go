package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundledCityDNA_ReturnsExactMatchForBundledCity(t *testing.T) {
	dna := BundledCityDNA("Madrid", "es")
	assert.Equal(t, "Madrid", dna.City)
	assert.Contains(t, dna.LocalKeywords, "tapas")
}

func TestBundledCityDNA_FallsBackByContinentalRegion(t *testing.T) {
	cases := []struct {
		city     string
		keyword  string
	}{
		{"Valencia, Spain", "bistro"},
		{"Kyoto", "night market"},
		{"Cartagena, Colombia", "mercado"},
		{"Austin", "diner"},
		{"Nowhereville", "local"},
	}

	for _, c := range cases {
		dna := BundledCityDNA(c.city, "en")
		assert.Equal(t, c.city, dna.City)
		assert.Contains(t, dna.LocalKeywords, c.keyword, "city %q", c.city)
	}
}

func TestRegionForCity_MatchesKnownSubstrings(t *testing.T) {
	assert.Equal(t, "european", regionForCity("Porto, Portugal"))
	assert.Equal(t, "asian", regionForCity("Ho Chi Minh City"))
	assert.Equal(t, "latin-american", regionForCity("Buenos Aires, Argentina"))
	assert.Equal(t, "north-american", regionForCity("Toronto"))
	assert.Equal(t, "", regionForCity("Atlantis"))
}
