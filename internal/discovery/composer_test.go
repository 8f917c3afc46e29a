package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

func TestComposeSpatial_OnlyNearbyProvider(t *testing.T) {
	ref := entities.Location{Latitude: -24.6, Longitude: 25.9}

	results := ComposeSpatial(sampleCorpus(), ref, 50)

	assert.Equal(t, []string{"alice"}, resultIDs(results))
	assert.InDelta(t, 0, results[0].DistanceKm, 1e-9)
}

func TestComposeSpatial_KeepsCorpusOrderAndDistances(t *testing.T) {
	ref := entities.Location{Latitude: -24.6, Longitude: 25.9}
	corpus := []*entities.Provider{
		{ID: "far", Location: loc(-21.2, 27.5)},
		{ID: "near", Location: loc(-24.61, 25.91)},
	}

	results := ComposeSpatial(corpus, ref, 500)

	assert.Equal(t, []string{"far", "near"}, resultIDs(results))
	assert.Greater(t, results[0].DistanceKm, results[1].DistanceKm)
}

func TestComposeSpatial_NoCoordinatesNeverIncluded(t *testing.T) {
	ref := entities.Location{Latitude: 0, Longitude: 0}
	corpus := append(sampleCorpus(), &entities.Provider{ID: "nowhere", Name: "No Location"})

	results := ComposeSpatial(corpus, ref, float64(DefaultRadiusBounds().MaxKm))
	assert.NotContains(t, resultIDs(results), "nowhere")

	results = ComposeSpatial(corpus, ref, 1e9)
	assert.NotContains(t, resultIDs(results), "nowhere")
	assert.ElementsMatch(t, []string{"alice", "bob"}, resultIDs(results))
}

func TestComposeSpatial_IgnoresFacetSelections(t *testing.T) {
	session := NewSession(DefaultRadiusBounds())
	session.Load(sampleCorpus(), nil)
	session.SetReference(loc(-24.6, 25.9))
	session.SetRadius(200)
	session.SetTextQuery("bob")
	session.ToggleSpecialty("Dermatology")

	view := session.Nearby()

	assert.Equal(t, []string{"alice"}, resultIDs(view.Results))
}

func TestComposeFaceted(t *testing.T) {
	corpus := sampleCorpus()

	assert.Equal(t, []string{"bob"}, ids(ComposeFaceted(corpus, FilterState{TextQuery: "bob"})))
	assert.Equal(t, []string{"alice"}, ids(ComposeFaceted(corpus, FilterState{Specialty: Select("Cardiology")})))
	assert.Equal(t, []string{"alice", "bob"}, ids(ComposeFaceted(corpus, FilterState{})))
}

func TestComposeFaceted_IgnoresRadius(t *testing.T) {
	corpus := append(sampleCorpus(), &entities.Provider{ID: "nowhere", Name: "Nadia"})

	results := ComposeFaceted(corpus, FilterState{RadiusKm: 10})

	assert.Equal(t, []string{"alice", "bob", "nowhere"}, ids(results))
}

func TestCompose_EmptyCorpus(t *testing.T) {
	spatial := ComposeSpatial(nil, entities.Location{}, 200)
	faceted := ComposeFaceted(nil, FilterState{TextQuery: "x"})

	assert.NotNil(t, spatial)
	assert.Empty(t, spatial)
	assert.NotNil(t, faceted)
	assert.Empty(t, faceted)
}
