package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFlightsSorted(t *testing.T, flights []Flight) {
	t.Helper()
	assert.True(t, sort.SliceIsSorted(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	}), "flights not sorted ascending by price")
}

func assertHotelsSorted(t *testing.T, hotels []Hotel) {
	t.Helper()
	assert.True(t, sort.SliceIsSorted(hotels, func(i, j int) bool {
		return hotels[i].Price < hotels[j].Price
	}), "hotels not sorted ascending by price")
}

// ─── Flights ──────────────────────────────────────────────────────────────────

func TestSearchFlightsNoCredential(t *testing.T) {
	c := NewSerpClient("", WithSeed(1))

	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "2025-01-15", 1)

	assert.False(t, live)
	require.Len(t, flights, 6)
	assertFlightsSorted(t, flights)
	for _, f := range flights {
		assert.NotEmpty(t, f.Airline)
		assert.GreaterOrEqual(t, f.Price, float64(3000))
		assert.Less(t, f.Stops, 3)
	}
}

func TestSearchFlightsPlaceholderCredential(t *testing.T) {
	c := NewSerpClient("YOUR_SERPAPI_KEY_HERE", WithSeed(1))

	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.False(t, live)
	assert.Len(t, flights, 6)
}

func TestSearchFlightsSeededDeterminism(t *testing.T) {
	a, _ := NewSerpClient("", WithSeed(42)).
		SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)
	b, _ := NewSerpClient("", WithSeed(42)).
		SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.Equal(t, a, b)
}

func TestSearchFlightsPassengerMultiplier(t *testing.T) {
	single, _ := NewSerpClient("", WithSeed(7)).
		SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)
	double, _ := NewSerpClient("", WithSeed(7)).
		SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 2)

	require.Len(t, double, 6)
	for i := range double {
		assert.Equal(t, single[i].Price*2, double[i].Price)
	}
}

func TestSearchFlightsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL), WithSeed(1))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "2025-01-15", 1)

	assert.False(t, live)
	assert.Len(t, flights, 6)
	assertFlightsSorted(t, flights)
}

func TestSearchFlightsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL), WithSeed(1))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.False(t, live)
	assert.Len(t, flights, 6)
}

func TestSearchFlightsLiveParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_flights", r.URL.Query().Get("engine"))
		assert.Equal(t, "DEL", r.URL.Query().Get("departure_id"))
		assert.Equal(t, "GOI", r.URL.Query().Get("arrival_id"))
		assert.Equal(t, "INR", r.URL.Query().Get("currency"))

		json.NewEncoder(w).Encode(map[string]any{
			"best_flights": []map[string]any{
				{
					"flights": []map[string]any{{
						"airline":        "IndiGo",
						"flight_number":  "6E 123",
						"aircraft":       "Airbus A320",
						"departure_time": "08:30",
						"arrival_time":   "10:45",
						"duration":       135,
					}},
					"price":      4500,
					"stop_count": 0,
				},
				{
					// Legless candidate: must be skipped.
					"flights":    []map[string]any{},
					"price":      2000,
					"stop_count": 0,
				},
				{
					// Missing airline/number/aircraft: placeholders, not failure.
					"flights":    []map[string]any{{"departure_time": 510, "duration": 90}},
					"price":      3000,
					"stop_count": 1,
				},
			},
		})
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "2025-01-15", 2)

	assert.True(t, live)
	require.Len(t, flights, 2)
	assertFlightsSorted(t, flights)

	// Cheapest first, with defaults for the sparse record and the
	// numeric departure time rendered as a clock string.
	assert.Equal(t, float64(6000), flights[0].Price) // 3000 × 2 passengers
	assert.Equal(t, "Airline", flights[0].Airline)
	assert.Equal(t, "N/A", flights[0].FlightNumber)
	assert.Equal(t, "Aircraft", flights[0].Aircraft)
	assert.Equal(t, "08:30", flights[0].DepartureTime)

	assert.Equal(t, float64(9000), flights[1].Price)
	assert.Equal(t, "IndiGo", flights[1].Airline)
	assert.Equal(t, 135, flights[1].DurationMinutes)
}

func TestSearchFlightsFallsBackToOtherFlights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"best_flights": []map[string]any{},
			"other_flights": []map[string]any{
				{
					"flights": []map[string]any{{"airline": "Vistara", "departure_time": "06:00", "arrival_time": "08:10", "duration": 130}},
					"price":   5200,
				},
			},
		})
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.True(t, live)
	require.Len(t, flights, 1)
	assert.Equal(t, "Vistara", flights[0].Airline)
}

func TestSearchFlightsScanWindowBounded(t *testing.T) {
	// Seven candidates, the first legless: only the first six are
	// considered, so the invalid record costs a slot and five survive.
	items := []map[string]any{{"flights": []map[string]any{}, "price": 100}}
	for i := 0; i < 6; i++ {
		items = append(items, map[string]any{
			"flights": []map[string]any{{"airline": "IndiGo", "departure_time": "08:00", "arrival_time": "10:00", "duration": 120}},
			"price":   1000 + i,
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"best_flights": items})
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.True(t, live)
	assert.Len(t, flights, 5)
}

func TestSearchFlightsEmptyPayloadFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL), WithSeed(3))
	flights, live := c.SearchFlights(context.Background(), "Delhi", "Goa", "2025-01-10", "", 1)

	assert.False(t, live)
	assert.Len(t, flights, 6)
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

func TestSearchHotelsNoCredential(t *testing.T) {
	c := NewSerpClient("")

	hotels, live := c.SearchHotels(context.Background(), "Goa", "2025-01-10", "2025-01-15", 2)

	assert.False(t, live)
	require.Len(t, hotels, 8)
	assertHotelsSorted(t, hotels)
	for _, h := range hotels {
		assert.Equal(t, "Goa", h.Location)
		assert.Greater(t, h.Price, float64(0))
		assert.NotEmpty(t, h.Amenities)
	}
}

func TestSearchHotelsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	hotels, live := c.SearchHotels(context.Background(), "Goa", "2025-01-10", "2025-01-15", 2)

	assert.False(t, live)
	assert.Len(t, hotels, 8)
	assertHotelsSorted(t, hotels)
}

func TestSearchHotelsLiveParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_hotels", r.URL.Query().Get("engine"))
		assert.Equal(t, "Goa", r.URL.Query().Get("q"))

		json.NewEncoder(w).Encode(map[string]any{
			"properties": []map[string]any{
				{
					"title":        "Taj Resort",
					"price":        "₹4,500",
					"rating":       4.6,
					"review_count": 812,
					"location":     "Candolim, Goa",
					"amenities":    []string{"WiFi", "Pool"},
				},
				{
					// No price string: record must be skipped.
					"title": "Phantom Lodge",
				},
				{
					// Explicitly empty price string: also skipped.
					"title": "Void Hotel",
					"price": "",
				},
				{
					// Unparseable price counts as zero; missing rating
					// defaults to 4.0 and reviews to 0.
					"title": "Mystery Inn",
					"price": "call for rates",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	hotels, live := c.SearchHotels(context.Background(), "Goa", "2025-01-10", "2025-01-15", 2)

	assert.True(t, live)
	require.Len(t, hotels, 2)
	assertHotelsSorted(t, hotels)

	assert.Equal(t, "Mystery Inn", hotels[0].Name)
	assert.Equal(t, float64(0), hotels[0].Price)
	assert.Equal(t, 4.0, hotels[0].Rating)
	assert.Equal(t, 0, hotels[0].Reviews)

	assert.Equal(t, "Taj Resort", hotels[1].Name)
	assert.Equal(t, float64(4500), hotels[1].Price)
	assert.Equal(t, 4.6, hotels[1].Rating)
	assert.Equal(t, 812, hotels[1].Reviews)
}

func TestSearchHotelsEmptyPropertiesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": []}`))
	}))
	defer srv.Close()

	c := NewSerpClient("test-key", WithBaseURL(srv.URL))
	hotels, live := c.SearchHotels(context.Background(), "Manali", "2025-01-10", "2025-01-15", 2)

	assert.False(t, live)
	require.Len(t, hotels, 8)
	assert.Equal(t, "Manali", hotels[0].Location)
}

func TestParsePriceString(t *testing.T) {
	assert.Equal(t, float64(4500), parsePriceString("₹4,500"))
	assert.Equal(t, 120.50, parsePriceString("$120.50"))
	assert.Equal(t, float64(0), parsePriceString("free cancellation"))
	assert.Equal(t, float64(0), parsePriceString(""))
}
