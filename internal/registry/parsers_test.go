package registry

import (
	"testing"
	"time"
)

func TestParseWeather(t *testing.T) {
	payload := []byte(`{
		"current_weather": {
			"temperature": 21.4,
			"windspeed": 12.5,
			"winddirection": 180,
			"weathercode": 0
		}
	}`)

	model, err := parseWeather(payload)
	if err != nil {
		t.Fatalf("parseWeather: %v", err)
	}

	weather := model.(*WeatherDisplay)
	if weather.Icon != "☀️" {
		t.Fatalf("icon = %q", weather.Icon)
	}
	if weather.Temperature != "21.4°C" {
		t.Fatalf("temperature = %q", weather.Temperature)
	}
	if weather.Description != "Wind: 12.5 km/h" {
		t.Fatalf("description = %q", weather.Description)
	}
}

func TestParseWeatherUnknownCodeFallsBack(t *testing.T) {
	payload := []byte(`{"current_weather":{"temperature":1,"windspeed":1,"winddirection":1,"weathercode":42}}`)

	model, err := parseWeather(payload)
	if err != nil {
		t.Fatalf("parseWeather: %v", err)
	}
	if icon := model.(*WeatherDisplay).Icon; icon != "🌈" {
		t.Fatalf("icon = %q, want fallback", icon)
	}
}

func TestParseWeatherMissingBlock(t *testing.T) {
	if _, err := parseWeather([]byte(`{}`)); err == nil {
		t.Fatalf("missing current_weather accepted")
	}
}

func TestParseCryptoSortsAndFormats(t *testing.T) {
	payload := []byte(`{
		"ethereum": {"usd": 3500.5, "usd_24h_change": -1.234},
		"bitcoin": {"usd": 64250.75, "usd_24h_change": 2.5}
	}`)

	model, err := parseCrypto(payload)
	if err != nil {
		t.Fatalf("parseCrypto: %v", err)
	}

	crypto := model.(*CryptoDisplay)
	if len(crypto.Quotes) != 2 {
		t.Fatalf("quotes = %d", len(crypto.Quotes))
	}
	// Coins render alphabetically regardless of payload order.
	if crypto.Quotes[0].Coin != "bitcoin" || crypto.Quotes[1].Coin != "ethereum" {
		t.Fatalf("order = %s, %s", crypto.Quotes[0].Coin, crypto.Quotes[1].Coin)
	}
	if crypto.Quotes[0].Price != "$64,250.75" {
		t.Fatalf("price = %q", crypto.Quotes[0].Price)
	}
	if crypto.Quotes[0].Symbol != "₿" || crypto.Quotes[1].Symbol != "Ξ" {
		t.Fatalf("symbols = %q, %q", crypto.Quotes[0].Symbol, crypto.Quotes[1].Symbol)
	}
	if crypto.Quotes[1].Change != "-1.23" {
		t.Fatalf("change = %q", crypto.Quotes[1].Change)
	}
}

func TestParseCryptoMissingPrice(t *testing.T) {
	if _, err := parseCrypto([]byte(`{"bitcoin":{"usd_24h_change":1}}`)); err == nil {
		t.Fatalf("quote without usd accepted")
	}
}

func TestParseStock(t *testing.T) {
	payload := []byte(`{
		"Global Quote": {
			"01. symbol": "IBM",
			"05. price": "175.5000",
			"09. change": "1.2500",
			"10. change percent": "0.7174%"
		}
	}`)

	model, err := parseStock(payload)
	if err != nil {
		t.Fatalf("parseStock: %v", err)
	}
	stock := model.(*StockDisplay)
	if stock.Symbol != "IBM" || stock.Price != "175.5000" || stock.ChangePercent != "0.7174%" {
		t.Fatalf("stock = %+v", stock)
	}
}

func TestParseStockEmptyQuote(t *testing.T) {
	if _, err := parseStock([]byte(`{"Global Quote": {}}`)); err == nil {
		t.Fatalf("empty quote accepted")
	}
}

func TestParseGitHubNameFallsBackToLogin(t *testing.T) {
	payload := []byte(`{"login":"torvalds","public_repos":4,"followers":150000}`)

	model, err := parseGitHub(payload)
	if err != nil {
		t.Fatalf("parseGitHub: %v", err)
	}
	github := model.(*GitHubDisplay)
	if github.Name != "torvalds" {
		t.Fatalf("name = %q, want login fallback", github.Name)
	}
	if github.Repos != 4 || github.Followers != 150000 {
		t.Fatalf("stats = %+v", github)
	}
}

func TestParseMovieBlanksMissingPoster(t *testing.T) {
	payload := []byte(`{"Title":"Fight Club","Year":"1999","imdbRating":"8.8","Poster":"N/A"}`)

	model, err := parseMovie(payload)
	if err != nil {
		t.Fatalf("parseMovie: %v", err)
	}
	movie := model.(*MovieDisplay)
	if movie.Poster != "" {
		t.Fatalf("poster = %q, want blank", movie.Poster)
	}
	if movie.Title != "Fight Club" || movie.Rating != "8.8" {
		t.Fatalf("movie = %+v", movie)
	}
}

func TestTextParsers(t *testing.T) {
	cases := []struct {
		name    string
		parse   func([]byte) (any, error)
		payload string
		want    string
	}{
		{"joke", parseJoke, `{"joke":"A clean desk is a sign of a cluttered drawer."}`, "A clean desk is a sign of a cluttered drawer."},
		{"fact", parseFact, `{"text":"Bananas are berries."}`, "Bananas are berries."},
		{"advice", parseAdvice, `{"slip":{"advice":"Sleep on it."}}`, "Sleep on it."},
	}

	for _, tc := range cases {
		model, err := tc.parse([]byte(tc.payload))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := model.(*TextDisplay).Text; got != tc.want {
			t.Fatalf("%s text = %q", tc.name, got)
		}

		if _, err := tc.parse([]byte(`{}`)); err == nil {
			t.Fatalf("%s accepted an empty payload", tc.name)
		}
	}
}

func TestImageParsers(t *testing.T) {
	model, err := parseCat([]byte(`[{"url":"https://cdn.example/cat.jpg"}]`))
	if err != nil {
		t.Fatalf("parseCat: %v", err)
	}
	if got := model.(*ImageDisplay).URL; got != "https://cdn.example/cat.jpg" {
		t.Fatalf("cat url = %q", got)
	}
	if _, err := parseCat([]byte(`[]`)); err == nil {
		t.Fatalf("empty cat list accepted")
	}

	model, err = parseDog([]byte(`{"message":"https://images.example/dog.jpg","status":"success"}`))
	if err != nil {
		t.Fatalf("parseDog: %v", err)
	}
	if got := model.(*ImageDisplay).URL; got != "https://images.example/dog.jpg" {
		t.Fatalf("dog url = %q", got)
	}
}

func TestParseProfile(t *testing.T) {
	payload := []byte(`{
		"results": [{
			"name": {"first": "Ada", "last": "Lovelace"},
			"email": "ada@example.com",
			"location": {"city": "London", "country": "United Kingdom"},
			"picture": {"large": "https://cdn.example/ada.jpg"}
		}]
	}`)

	model, err := parseProfile(payload)
	if err != nil {
		t.Fatalf("parseProfile: %v", err)
	}
	profile := model.(*ProfileDisplay)
	if profile.Name != "Ada Lovelace" || profile.Location != "London, United Kingdom" {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestClockParserUsesInjectedClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)
	parse := clockParser(func() time.Time { return at })

	model, err := parse(nil)
	if err != nil {
		t.Fatalf("clock parse: %v", err)
	}
	clock := model.(*ClockDisplay)
	if clock.Time != "09:30:15" {
		t.Fatalf("time = %q", clock.Time)
	}
	if clock.Date != "Wednesday, 1 May 2024" {
		t.Fatalf("date = %q", clock.Date)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[float64]string{
		0:           "0",
		999:         "999",
		1000:        "1,000",
		64250.75:    "64,250.75",
		1234567.89:  "1,234,567.89",
		-1234567.89: "-1,234,567.89",
		0.42:        "0.42",
	}
	for input, want := range cases {
		if got := groupThousands(input); got != want {
			t.Fatalf("groupThousands(%v) = %q, want %q", input, got, want)
		}
	}
}

func TestCoinGlyphFallback(t *testing.T) {
	if got := coinGlyph("solana"); got != "SOL" {
		t.Fatalf("glyph = %q", got)
	}
	if got := coinGlyph("ox"); got != "OX" {
		t.Fatalf("glyph = %q", got)
	}
}
