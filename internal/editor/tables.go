package editor

// Coordinates is a latitude/longitude pair for the weather lookup table.
type Coordinates struct {
	Lat float64
	Lon float64
}

// CityNames lists the selectable weather cities in menu order.
var CityNames = []string{
	"Moscow",
	"Saint Petersburg",
	"Novosibirsk",
	"Yekaterinburg",
	"Kazan",
	"Nizhny Novgorod",
	"London",
	"New York",
	"Tokyo",
}

// Cities maps a city name to its coordinates. Committing a weather
// configuration derives latitude and longitude from this table.
var Cities = map[string]Coordinates{
	"Moscow":           {Lat: 55.7558, Lon: 37.6173},
	"Saint Petersburg": {Lat: 59.9343, Lon: 30.3351},
	"Novosibirsk":      {Lat: 55.0084, Lon: 82.9357},
	"Yekaterinburg":    {Lat: 56.8389, Lon: 60.6057},
	"Kazan":            {Lat: 55.8304, Lon: 49.0661},
	"Nizhny Novgorod":  {Lat: 56.2965, Lon: 43.9361},
	"London":           {Lat: 51.5074, Lon: -0.1278},
	"New York":         {Lat: 40.7128, Lon: -74.0060},
	"Tokyo":            {Lat: 35.6762, Lon: 139.6503},
}

// Coins lists the selectable crypto assets in menu order.
var Coins = []string{"bitcoin", "ethereum", "litecoin", "cardano", "dogecoin"}

// MovieIDs lists the selectable movies in menu order.
var MovieIDs = []string{
	"tt0111161",
	"tt0068646",
	"tt0071562",
	"tt0468569",
	"tt0050083",
	"tt0108052",
	"tt0167260",
	"tt0110912",
	"tt0060196",
	"tt0137523",
}

// PopularMovies maps an IMDb id to its display title. Committing a movie
// configuration derives the title from this table.
var PopularMovies = map[string]string{
	"tt0111161": "The Shawshank Redemption",
	"tt0068646": "The Godfather",
	"tt0071562": "The Godfather: Part II",
	"tt0468569": "The Dark Knight",
	"tt0050083": "12 Angry Men",
	"tt0108052": "Schindler's List",
	"tt0167260": "The Lord of the Rings: The Return of the King",
	"tt0110912": "Pulp Fiction",
	"tt0060196": "The Good, the Bad and the Ugly",
	"tt0137523": "Fight Club",
}
