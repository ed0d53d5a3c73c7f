package geo

// City is one geographic point. Immutable once loaded: the solver reads
// city data only through the distance matrix built from it.
type City struct {
	Name string  // unique identifier
	Lon  float64 // longitude (x in planar mode)
	Lat  float64 // latitude (y in planar mode)
}

// Morocco returns the built-in data set of 22 major Moroccan cities with
// simplified lon/lat coordinates (longitude ≈ −10..−1, latitude ≈ 30..36,
// proportionally resembling real positions). The slice order is stable and
// defines the city indices used in tours.
func Morocco() []City {
	return []City{
		{Name: "Tangier", Lon: -5.8, Lat: 35.8},
		{Name: "Tetouan", Lon: -5.4, Lat: 35.6},
		{Name: "Larache", Lon: -6.2, Lat: 35.2},
		{Name: "Chefchaouen", Lon: -5.3, Lat: 35.2},
		{Name: "Hoceima", Lon: -3.9, Lat: 35.2},
		{Name: "Kenitra", Lon: -6.6, Lat: 34.3},
		{Name: "Rabat", Lon: -6.8, Lat: 34.0},
		{Name: "Casablanca", Lon: -7.6, Lat: 33.6},
		{Name: "Fes", Lon: -5.0, Lat: 34.0},
		{Name: "Meknes", Lon: -5.5, Lat: 33.9},
		{Name: "Oujda", Lon: -1.9, Lat: 34.7},
		{Name: "Nador", Lon: -2.9, Lat: 35.2},
		{Name: "Marrakesh", Lon: -8.0, Lat: 31.6},
		{Name: "Agadir", Lon: -9.6, Lat: 30.4},
		{Name: "Essaouira", Lon: -9.8, Lat: 31.5},
		{Name: "Ouarzazate", Lon: -6.9, Lat: 30.9},
		{Name: "El Jadida", Lon: -8.5, Lat: 33.2},
		{Name: "Safi", Lon: -9.2, Lat: 32.3},
		{Name: "Beni Mellal", Lon: -6.4, Lat: 32.3},
		{Name: "Taza", Lon: -4.0, Lat: 34.2},
		{Name: "Ifrane", Lon: -5.1, Lat: 33.5},
		{Name: "Errachidia", Lon: -4.4, Lat: 32.0},
	}
}

// Names returns the city names in slice order, aligned with tour indices.
func Names(cities []City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Name
	}

	return out
}
