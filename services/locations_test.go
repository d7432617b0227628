package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCityCodeKnownCities(t *testing.T) {
	cases := map[string]string{
		"delhi":     "DEL",
		"Delhi":     "DEL",
		"  Mumbai ": "BOM",
		"GOA":       "GOI",
		"kerala":    "COK",
		"manali":    "KUU",
		"rishikesh": "DED",
	}
	for input, want := range cases {
		assert.Equal(t, want, CityCode(input), "input %q", input)
	}
}

func TestCityCodeFallback(t *testing.T) {
	// Unknown names resolve to their first 3 uppercase characters.
	assert.Equal(t, "PAR", CityCode("Paris"))
	assert.Equal(t, "TOK", CityCode("tokyo"))
	assert.Equal(t, "LON", CityCode(" london "))
}

func TestCityCodeMultiByteNames(t *testing.T) {
	// Names with multi-byte runes are sliced by character, never mid-rune.
	got := CityCode("Łódź")
	assert.True(t, utf8.ValidString(got), "code %q is not valid UTF-8", got)
	assert.Equal(t, "ŁÓD", got)

	// A 2-rune name is longer than 3 bytes but still passes through whole.
	assert.Equal(t, "ЮГ", CityCode("юг"))
}

func TestCityCodeShortInput(t *testing.T) {
	// Inputs shorter than 3 characters yield a shorter code, not an error.
	assert.Equal(t, "UR", CityCode("ur"))
	assert.Equal(t, "", CityCode("  "))
}
