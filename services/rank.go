package services

import "sort"

// Listings are always presented cheapest-first, whether they came from the
// live provider or the synthetic generator, so presentation logic never
// branches on data source. Sorts are stable to keep equal-priced entries in
// their original order.

func RankFlights(flights []Flight) {
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	})
}

func RankHotels(hotels []Hotel) {
	sort.SliceStable(hotels, func(i, j int) bool {
		return hotels[i].Price < hotels[j].Price
	})
}
