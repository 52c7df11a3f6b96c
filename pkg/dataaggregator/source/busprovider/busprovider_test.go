package busprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
	"github.com/travigo/transitmerge/pkg/providers"
)

func testSource(baseURL string) Source {
	return Source{
		Provider: &providers.Provider{
			Identifier: "bus",
			Kind:       providers.KindBus,
			BaseURL:    baseURL,
			Paths:      map[string]string{providers.PathBusSearch: "/api/search"},
		},
	}
}

func TestBusesBetweenCities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "Hyderabad", r.URL.Query().Get("source"))
		assert.Equal(t, "2024-03-09", r.URL.Query().Get("doj"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"services": [
			{"serviceKey": "S", "travelsName": "Orange", "busTypeName": "Non-AC Sleeper", "duration": "9h 15m", "fare": "799"},
			{"serviceKey": "S", "travelsName": "VRL", "busTypeName": "AC Seater", "duration": "8h", "fare": "999", "originalFare": "1100"}
		]}`))
	}))
	defer server.Close()

	legs, err := testSource(server.URL).BusesBetweenCities(context.Background(), query.BusesBetweenCities{
		FromCity: "Hyderabad",
		ToCity:   "Bangalore",
		Date:     time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, "S0", legs[0].Identifier)
	assert.Equal(t, "S1", legs[1].Identifier)
	assert.False(t, legs[0].Features.AC)
	assert.True(t, legs[0].Features.Sleeper)
	assert.True(t, legs[1].IsDiscounted())
}

func TestBusesBetweenCitiesBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := testSource(server.URL).BusesBetweenCities(context.Background(), query.BusesBetweenCities{FromCity: "A", ToCity: "B"})

	assert.True(t, ctdf.IsKind(err, ctdf.ErrorKindUpstreamFormat))
}

func TestLookupDisabled(t *testing.T) {
	_, err := testSource("").Lookup(context.Background(), query.BusesBetweenCities{})

	assert.ErrorIs(t, err, source.UnsupportedSourceError)
}
