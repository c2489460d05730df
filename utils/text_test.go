package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceSlug(t *testing.T) {
	assert.Equal(t, "cancha-norte", PlaceSlug("Cancha Norte"))
	assert.Equal(t, "la-bombonera", PlaceSlug("  La   Bombonera "))
	assert.Equal(t, "estadio-peñón", PlaceSlug("Estadio Peñón"))
	assert.Equal(t, "cancha-5-&-7", PlaceSlug("Cancha 5 & 7"))
	assert.Equal(t, "club-#3-(norte)", PlaceSlug("Club #3 (Norte)"))
	assert.Equal(t, "", PlaceSlug("   "))
}

func TestVenueKey(t *testing.T) {
	assert.Equal(t, "CANCHA NORTE", VenueKey("  cancha Norte "))
	assert.Equal(t, VenueKey("Cancha Norte"), VenueKey("CANCHA NORTE"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "estadio penon", Fold("Estadio PEÑÓN"))
}
