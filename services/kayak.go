package services

import (
	"fmt"
	"net/url"
	"strconv"
)

// Deep links onto KAYAK's search pages, pre-filled from normalized trip
// parameters. These are built even when no live search was performed;
// compatibility with KAYAK's query-parameter contract is best-effort.

const (
	kayakFlightsBase = "https://www.kayak.com/flights"
	kayakHotelsBase  = "https://www.kayak.com/hotels"
)

type FlightLinkParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string // empty for one-way
	Passengers    int
	Cabin         string
}

type HotelLinkParams struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      int
	Rooms       int
}

type TripLinks struct {
	Flights string `json:"flights"`
	Hotels  string `json:"hotels"`
}

// FlightURL builds a KAYAK flight search URL. For one-way trips both the
// return-date path segment and the returndate query parameter are omitted.
func FlightURL(p FlightLinkParams) (string, error) {
	if p.Passengers <= 0 {
		p.Passengers = 1
	}
	if p.Cabin == "" {
		p.Cabin = "economy"
	}

	originCode := CityCode(p.Origin)
	destCode := CityCode(p.Destination)

	depDate, err := NormalizeDate(p.DepartureDate)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("origin", originCode)
	query.Set("destination", destCode)
	query.Set("departdate", depDate)
	query.Set("passengers", strconv.Itoa(p.Passengers))
	query.Set("cabin", p.Cabin)
	query.Set("sort", "bestflight_a")

	path := fmt.Sprintf("%s/%s-%s/%s", kayakFlightsBase, originCode, destCode, depDate)
	if p.ReturnDate != "" {
		retDate, err := NormalizeDate(p.ReturnDate)
		if err != nil {
			return "", err
		}
		query.Set("returndate", retDate)
		path += "/" + retDate
	}

	return path + "?" + query.Encode(), nil
}

// HotelURL builds a KAYAK hotel search URL, keyed by the raw destination
// name rather than a location code.
func HotelURL(p HotelLinkParams) (string, error) {
	if p.Guests <= 0 {
		p.Guests = 2
	}
	if p.Rooms <= 0 {
		p.Rooms = 1
	}

	checkIn, err := NormalizeDate(p.CheckIn)
	if err != nil {
		return "", err
	}
	checkOut, err := NormalizeDate(p.CheckOut)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("destination", p.Destination)
	query.Set("checkin", checkIn)
	query.Set("checkout", checkOut)
	query.Set("guests", strconv.Itoa(p.Guests))
	query.Set("rooms", strconv.Itoa(p.Rooms))
	query.Set("sort", "rank_a")

	return fmt.Sprintf("%s/%s/%s/%s?%s",
		kayakHotelsBase, url.PathEscape(p.Destination), checkIn, checkOut, query.Encode()), nil
}

// TripURLs composes flight and hotel search URLs for a complete trip.
func TripURLs(origin, destination, startDate, endDate string, passengers int) (TripLinks, error) {
	flights, err := FlightURL(FlightLinkParams{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: startDate,
		ReturnDate:    endDate,
		Passengers:    passengers,
	})
	if err != nil {
		return TripLinks{}, err
	}

	hotels, err := HotelURL(HotelLinkParams{
		Destination: destination,
		CheckIn:     startDate,
		CheckOut:    endDate,
		Guests:      passengers,
	})
	if err != nil {
		return TripLinks{}, err
	}

	return TripLinks{Flights: flights, Hotels: hotels}, nil
}
