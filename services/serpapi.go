package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Flight struct {
	ID              string  `json:"id"`
	Airline         string  `json:"airline"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Stops           int     `json:"stops"`
	FlightNumber    string  `json:"flight_number,omitempty"`
	Aircraft        string  `json:"aircraft,omitempty"`
}

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"` // per night
	OriginalPrice float64  `json:"original_price,omitempty"`
	Image         string   `json:"image,omitempty"`
	Amenities     []string `json:"amenities"`
}

const (
	maxFlightResults = 6
	maxHotelResults  = 8

	placeholderKey = "YOUR_SERPAPI_KEY_HERE"
)

// ─── Client ───────────────────────────────────────────────────────────────────

// SerpClient queries SerpApi for live flight and hotel listings. Every
// failure path (missing credential, network fault, non-2xx response,
// unusable payload) terminates in synthetic data: search never fails
// outward.
type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rnd        *rand.Rand
}

type SerpOption func(*SerpClient)

func WithBaseURL(baseURL string) SerpOption {
	return func(c *SerpClient) { c.baseURL = baseURL }
}

func WithHTTPClient(client *http.Client) SerpOption {
	return func(c *SerpClient) { c.httpClient = client }
}

// WithSeed fixes the synthetic generator's randomness for deterministic tests.
func WithSeed(seed int64) SerpOption {
	return func(c *SerpClient) { c.rnd = rand.New(rand.NewSource(seed)) }
}

func NewSerpClient(apiKey string, opts ...SerpOption) *SerpClient {
	c := &SerpClient{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SerpClient) configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

func (c *SerpClient) search(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Service: "serpapi", StatusCode: resp.StatusCode, Message: string(body)}
	}
	return body, nil
}

// ─── Flight search ────────────────────────────────────────────────────────────

// SearchFlights returns up to 6 flight listings sorted ascending by price.
// The second result reports whether the listings came from the live provider.
func (c *SerpClient) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, passengers int) ([]Flight, bool) {
	if passengers <= 0 {
		passengers = 1
	}

	if !c.configured() {
		log.Println("serpapi key not configured - using synthetic flight data")
		return c.mockFlights(passengers), false
	}

	depDate, err := NormalizeDate(departureDate)
	if err != nil {
		log.Printf("flight search: %v - using synthetic data", err)
		return c.mockFlights(passengers), false
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", CityCode(origin))
	params.Set("arrival_id", CityCode(destination))
	params.Set("outbound_date", depDate)
	if returnDate != "" {
		retDate, err := NormalizeDate(returnDate)
		if err != nil {
			log.Printf("flight search: %v - using synthetic data", err)
			return c.mockFlights(passengers), false
		}
		params.Set("return_date", retDate)
	}
	params.Set("adults", strconv.Itoa(passengers))
	params.Set("currency", "INR")

	body, err := c.search(ctx, params)
	if err != nil {
		log.Printf("serpapi flight search failed: %v - using synthetic data", err)
		return c.mockFlights(passengers), false
	}

	flights := parseFlightResults(body, passengers)
	if len(flights) == 0 {
		log.Println("serpapi returned no usable flights - using synthetic data")
		return c.mockFlights(passengers), false
	}

	RankFlights(flights)
	return flights, true
}

// SerpApi nests flight results two lists deep: best_flights is preferred,
// other_flights is the spillover when best_flights is empty.
type serpFlightsResponse struct {
	BestFlights  []serpFlightItem `json:"best_flights"`
	OtherFlights []serpFlightItem `json:"other_flights"`
}

type serpFlightItem struct {
	Flights   []serpFlightLeg `json:"flights"`
	Price     float64         `json:"price"`
	StopCount int             `json:"stop_count"`
}

type serpFlightLeg struct {
	Airline       string   `json:"airline"`
	FlightNumber  string   `json:"flight_number"`
	Aircraft      string   `json:"aircraft"`
	DepartureTime flexTime `json:"departure_time"`
	ArrivalTime   flexTime `json:"arrival_time"`
	Duration      int      `json:"duration"` // minutes
}

func parseFlightResults(body []byte, passengers int) []Flight {
	var resp serpFlightsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("serpapi flight payload unparseable: %v", err)
		return nil
	}

	flights := collectFlights(resp.BestFlights, passengers)
	if len(flights) == 0 {
		flights = collectFlights(resp.OtherFlights, passengers)
	}
	return flights
}

func collectFlights(items []serpFlightItem, passengers int) []Flight {
	// Only the first 6 candidates are considered; invalid records inside
	// the window are dropped, not replaced from further down the list.
	if len(items) > maxFlightResults {
		items = items[:maxFlightResults]
	}
	flights := make([]Flight, 0, len(items))
	for i, item := range items {
		// A candidate must carry at least one leg.
		if len(item.Flights) == 0 {
			continue
		}
		leg := item.Flights[0]

		f := Flight{
			ID:              fmt.Sprintf("flight-%d", i),
			Airline:         leg.Airline,
			DepartureTime:   leg.DepartureTime.String(),
			ArrivalTime:     leg.ArrivalTime.String(),
			DurationMinutes: leg.Duration,
			Price:           item.Price * float64(passengers),
			Stops:           item.StopCount,
			FlightNumber:    leg.FlightNumber,
			Aircraft:        leg.Aircraft,
		}
		// Missing fields get placeholders rather than failing the record.
		if f.Airline == "" {
			f.Airline = "Airline"
		}
		if f.FlightNumber == "" {
			f.FlightNumber = "N/A"
		}
		if f.Aircraft == "" {
			f.Aircraft = "Aircraft"
		}
		flights = append(flights, f)
	}
	return flights
}

// mockFlights synthesizes a plausible result set for the fallback path.
func (c *SerpClient) mockFlights(passengers int) []Flight {
	airlines := []string{"Air India", "SpiceJet", "IndiGo", "Vistara", "GoAir", "AirAsia"}
	aircraft := []string{"Airbus A320", "Airbus A321", "Airbus A380"}

	flights := make([]Flight, 0, maxFlightResults)
	for i := 0; i < maxFlightResults; i++ {
		depHour := c.rnd.Intn(20) + 4 // [4, 24)
		depMin := c.rnd.Intn(60)
		durHours := 2 + c.rnd.Intn(2) // 2-4 hours
		durMin := c.rnd.Intn(60)
		arrHour := (depHour + durHours) % 24
		arrMin := c.rnd.Intn(60)

		airline := airlines[c.rnd.Intn(len(airlines))]
		carrier := airlines[c.rnd.Intn(len(airlines))]
		price := float64(c.rnd.Intn(5000) + 3000)

		flights = append(flights, Flight{
			ID:              fmt.Sprintf("flight-%d", i),
			Airline:         airline,
			DepartureTime:   fmt.Sprintf("%02d:%02d", depHour, depMin),
			ArrivalTime:     fmt.Sprintf("%02d:%02d", arrHour, arrMin),
			DurationMinutes: durHours*60 + durMin,
			Price:           price * float64(passengers),
			Stops:           c.rnd.Intn(3),
			FlightNumber:    fmt.Sprintf("%s%d", strings.ToUpper(carrier[:2]), c.rnd.Intn(9000)+1000),
			Aircraft:        aircraft[c.rnd.Intn(len(aircraft))],
		})
	}

	RankFlights(flights)
	return flights
}

// ─── Hotel search ─────────────────────────────────────────────────────────────

// SearchHotels returns up to 8 hotel listings sorted ascending by per-night
// price, falling back to a synthetic catalog on any fault.
func (c *SerpClient) SearchHotels(ctx context.Context, destination, checkIn, checkOut string, guests int) ([]Hotel, bool) {
	if guests <= 0 {
		guests = 2
	}

	if !c.configured() {
		log.Println("serpapi key not configured - using synthetic hotel data")
		return mockHotels(destination), false
	}

	checkInDate, err := NormalizeDate(checkIn)
	if err != nil {
		log.Printf("hotel search: %v - using synthetic data", err)
		return mockHotels(destination), false
	}
	checkOutDate, err := NormalizeDate(checkOut)
	if err != nil {
		log.Printf("hotel search: %v - using synthetic data", err)
		return mockHotels(destination), false
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", destination)
	params.Set("check_in_date", checkInDate)
	params.Set("check_out_date", checkOutDate)
	params.Set("adults", strconv.Itoa(guests))
	params.Set("currency", "INR")

	body, err := c.search(ctx, params)
	if err != nil {
		log.Printf("serpapi hotel search failed: %v - using synthetic data", err)
		return mockHotels(destination), false
	}

	hotels := parseHotelResults(body)
	if len(hotels) == 0 {
		log.Println("serpapi returned no usable hotels - using synthetic data")
		return mockHotels(destination), false
	}

	RankHotels(hotels)
	return hotels, true
}

type serpHotelsResponse struct {
	Properties []serpHotelProperty `json:"properties"`
}

type serpHotelProperty struct {
	Title         string    `json:"title"`
	Price         *string   `json:"price"`
	OriginalPrice *string   `json:"original_price"`
	Rating        flexFloat `json:"rating"`
	ReviewCount   flexInt   `json:"review_count"`
	Location      string    `json:"location"`
	Image         string    `json:"image"`
	Amenities     []string  `json:"amenities"`
}

func parseHotelResults(body []byte) []Hotel {
	var resp serpHotelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("serpapi hotel payload unparseable: %v", err)
		return nil
	}

	// Same window rule as flights: the first 8 property records are
	// considered and filtered in place.
	props := resp.Properties
	if len(props) > maxHotelResults {
		props = props[:maxHotelResults]
	}
	hotels := make([]Hotel, 0, len(props))
	for i, p := range props {
		// A property record must carry a name and a non-empty price string.
		if p.Title == "" || p.Price == nil || *p.Price == "" {
			continue
		}

		rating := float64(p.Rating)
		if rating == 0 {
			rating = 4.0
		}

		h := Hotel{
			ID:        fmt.Sprintf("hotel-%d", i),
			Name:      p.Title,
			Rating:    rating,
			Reviews:   int(p.ReviewCount),
			Location:  p.Location,
			Price:     parsePriceString(*p.Price),
			Image:     p.Image,
			Amenities: p.Amenities,
		}
		if p.OriginalPrice != nil {
			h.OriginalPrice = parsePriceString(*p.OriginalPrice)
		}
		if h.Amenities == nil {
			h.Amenities = []string{}
		}
		hotels = append(hotels, h)
	}
	return hotels
}

// parsePriceString strips currency symbols and separators from a provider
// price string ("₹4,500" → 4500). Unparseable prices count as zero rather
// than failing the record.
func parsePriceString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// mockHotels is the fixed fallback catalog, relabeled with the requested
// destination.
func mockHotels(destination string) []Hotel {
	hotels := []Hotel{
		{ID: "hotel-1", Name: "The Grand Palace", Rating: 4.8, Reviews: 1250, Location: destination,
			Price: 4500, OriginalPrice: 5500,
			Amenities: []string{"WiFi", "Pool", "Gym", "Restaurant", "AC"},
			Image:     "https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=400"},
		{ID: "hotel-2", Name: "Sunset Resort", Rating: 4.6, Reviews: 892, Location: destination,
			Price: 3200, OriginalPrice: 4000,
			Amenities: []string{"WiFi", "Beach Access", "Restaurant", "Spa", "AC"},
			Image:     "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400"},
		{ID: "hotel-3", Name: "Royal Heritage Hotel", Rating: 4.5, Reviews: 756, Location: destination,
			Price:     2800,
			Amenities: []string{"WiFi", "Gym", "Restaurant", "AC", "Parking"},
			Image:     "https://images.unsplash.com/photo-1583422409516-2895a77efded?w=400"},
		{ID: "hotel-4", Name: "Budget Stay Inn", Rating: 4.2, Reviews: 543, Location: destination,
			Price:     1500,
			Amenities: []string{"WiFi", "Restaurant", "AC", "Parking"},
			Image:     "https://images.unsplash.com/photo-1570129477492-45f003313e78?w=400"},
		{ID: "hotel-5", Name: "Luxury Towers", Rating: 4.9, Reviews: 2100, Location: destination,
			Price: 7500, OriginalPrice: 9000,
			Amenities: []string{"WiFi", "Pool", "Gym", "Spa", "Restaurant", "Valet"},
			Image:     "https://images.unsplash.com/photo-1561501900-d3fee871d55e?w=400"},
		{ID: "hotel-6", Name: "Comfort Plaza", Rating: 4.4, Reviews: 634, Location: destination,
			Price:     2200,
			Amenities: []string{"WiFi", "Restaurant", "AC", "TV"},
			Image:     "https://images.unsplash.com/photo-1578898657097-f4ae319b0359?w=400"},
		{ID: "hotel-7", Name: "Mountain View Resort", Rating: 4.7, Reviews: 1456, Location: destination,
			Price: 5800, OriginalPrice: 7200,
			Amenities: []string{"WiFi", "Mountain View", "Restaurant", "Gym", "AC"},
			Image:     "https://images.unsplash.com/photo-1582719508461-905a9c344e3b?w=400"},
		{ID: "hotel-8", Name: "City Central Hotel", Rating: 4.3, Reviews: 789, Location: destination,
			Price:     2600,
			Amenities: []string{"WiFi", "Restaurant", "AC", "Business Center"},
			Image:     "https://images.unsplash.com/photo-1515877152452-18e92d2b26b2?w=400"},
	}

	RankHotels(hotels)
	return hotels
}

// ─── Flexible provider fields ─────────────────────────────────────────────────

// flexTime tolerates the provider sending times as either clock strings or
// minutes-since-midnight numbers.
type flexTime string

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		m := int(n)
		*t = flexTime(fmt.Sprintf("%02d:%02d", m/60, m%60))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = flexTime(s)
		return nil
	}
	*t = ""
	return nil
}

func (t flexTime) String() string { return string(t) }

// flexFloat tolerates numbers sent as strings ("4.2").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = flexFloat(v)
		}
		return nil
	}
	*f = 0
	return nil
}

// flexInt tolerates integers sent as strings ("1250").
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*i = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			*i = flexInt(v)
		}
		return nil
	}
	*i = 0
	return nil
}
