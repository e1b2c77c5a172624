package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// weatherGlyphs maps open-meteo WMO weather codes to display glyphs.
var weatherGlyphs = map[int]string{
	0: "☀️", 1: "🌤️", 2: "⛅", 3: "☁️", 45: "🌫️", 48: "🌫️",
	51: "🌦️", 53: "🌦️", 55: "🌦️", 61: "🌧️", 63: "🌧️", 65: "🌧️",
	80: "🌦️", 81: "🌧️", 82: "⛈️", 95: "⛈️", 96: "⛈️", 99: "⛈️",
}

// coinGlyphs maps well-known coin ids to their ticker glyphs; anything else
// falls back to the first three letters uppercased.
var coinGlyphs = map[string]string{
	"bitcoin":  "₿",
	"ethereum": "Ξ",
	"litecoin": "Ł",
	"cardano":  "ADA",
	"dogecoin": "Ð",
}

func parseWeather(payload []byte) (any, error) {
	var body struct {
		CurrentWeather *struct {
			Temperature   float64 `json:"temperature"`
			WindSpeed     float64 `json:"windspeed"`
			WindDirection float64 `json:"winddirection"`
			WeatherCode   int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("weather: decode payload: %w", err)
	}
	if body.CurrentWeather == nil {
		return nil, errors.New("weather: current_weather block missing")
	}

	weather := body.CurrentWeather
	glyph, ok := weatherGlyphs[weather.WeatherCode]
	if !ok {
		glyph = "🌈"
	}
	wind := formatFloat(weather.WindSpeed) + " km/h"

	return &WeatherDisplay{
		Icon:        glyph,
		Temperature: formatFloat(weather.Temperature) + "°C",
		Description: "Wind: " + wind,
		Details: []Detail{
			{Label: "Wind", Value: wind},
			{Label: "Dir.", Value: formatFloat(weather.WindDirection) + "°"},
		},
	}, nil
}

func parseProfile(payload []byte) (any, error) {
	var body struct {
		Results []struct {
			Name struct {
				First string `json:"first"`
				Last  string `json:"last"`
			} `json:"name"`
			Email    string `json:"email"`
			Location struct {
				City    string `json:"city"`
				Country string `json:"country"`
			} `json:"location"`
			Picture struct {
				Large string `json:"large"`
			} `json:"picture"`
		} `json:"results"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("profile: decode payload: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, errors.New("profile: results empty")
	}

	user := body.Results[0]
	return &ProfileDisplay{
		Avatar:   user.Picture.Large,
		Name:     user.Name.First + " " + user.Name.Last,
		Email:    user.Email,
		Location: user.Location.City + ", " + user.Location.Country,
	}, nil
}

func parseCrypto(payload []byte) (any, error) {
	var body map[string]struct {
		USD    *float64 `json:"usd"`
		Change *float64 `json:"usd_24h_change"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("crypto: decode payload: %w", err)
	}

	coins := make([]string, 0, len(body))
	for coin := range body {
		coins = append(coins, coin)
	}
	sort.Strings(coins)

	display := &CryptoDisplay{Quotes: make([]CryptoQuote, 0, len(coins))}
	for _, coin := range coins {
		quote := body[coin]
		if quote.USD == nil {
			return nil, fmt.Errorf("crypto: %s quote missing usd price", coin)
		}
		change := "0"
		if quote.Change != nil {
			change = strconv.FormatFloat(*quote.Change, 'f', 2, 64)
		}
		display.Quotes = append(display.Quotes, CryptoQuote{
			Coin:   coin,
			Symbol: coinGlyph(coin),
			Price:  "$" + groupThousands(*quote.USD),
			Change: change,
		})
	}
	return display, nil
}

func parseStock(payload []byte) (any, error) {
	var body struct {
		Quote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("stock: decode payload: %w", err)
	}
	if len(body.Quote) == 0 {
		return nil, errors.New("stock: Global Quote block missing")
	}

	return &StockDisplay{
		Symbol:        body.Quote["01. symbol"],
		Price:         body.Quote["05. price"],
		Change:        body.Quote["09. change"],
		ChangePercent: body.Quote["10. change percent"],
	}, nil
}

func parseJoke(payload []byte) (any, error) {
	var body struct {
		Joke string `json:"joke"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("joke: decode payload: %w", err)
	}
	if body.Joke == "" {
		return nil, errors.New("joke: joke field missing")
	}
	return &TextDisplay{Text: body.Joke}, nil
}

func parseFact(payload []byte) (any, error) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("fact: decode payload: %w", err)
	}
	if body.Text == "" {
		return nil, errors.New("fact: text field missing")
	}
	return &TextDisplay{Text: body.Text}, nil
}

func parseAdvice(payload []byte) (any, error) {
	var body struct {
		Slip struct {
			Advice string `json:"advice"`
		} `json:"slip"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("advice: decode payload: %w", err)
	}
	if body.Slip.Advice == "" {
		return nil, errors.New("advice: slip.advice field missing")
	}
	return &TextDisplay{Text: body.Slip.Advice}, nil
}

func parseCat(payload []byte) (any, error) {
	var body []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("cat: decode payload: %w", err)
	}
	if len(body) == 0 || body[0].URL == "" {
		return nil, errors.New("cat: image url missing")
	}
	return &ImageDisplay{URL: body[0].URL}, nil
}

func parseDog(payload []byte) (any, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("dog: decode payload: %w", err)
	}
	if body.Message == "" {
		return nil, errors.New("dog: image url missing")
	}
	return &ImageDisplay{URL: body.Message}, nil
}

func clockParser(clock func() time.Time) func([]byte) (any, error) {
	return func([]byte) (any, error) {
		now := clock()
		return &ClockDisplay{
			Time: now.Format("15:04:05"),
			Date: now.Format("Monday, 2 January 2006"),
		}, nil
	}
}

func parseGitHub(payload []byte) (any, error) {
	var body struct {
		Login       string `json:"login"`
		Name        string `json:"name"`
		AvatarURL   string `json:"avatar_url"`
		Followers   int    `json:"followers"`
		Following   int    `json:"following"`
		PublicRepos int    `json:"public_repos"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("github: decode payload: %w", err)
	}
	if body.Login == "" {
		return nil, errors.New("github: login field missing")
	}

	name := body.Name
	if name == "" {
		name = body.Login
	}
	return &GitHubDisplay{
		Avatar:    body.AvatarURL,
		Username:  body.Login,
		Name:      name,
		Followers: body.Followers,
		Following: body.Following,
		Repos:     body.PublicRepos,
	}, nil
}

func parseMovie(payload []byte) (any, error) {
	var body struct {
		Title      string `json:"Title"`
		Year       string `json:"Year"`
		IMDBRating string `json:"imdbRating"`
		Poster     string `json:"Poster"`
		Genre      string `json:"Genre"`
		Runtime    string `json:"Runtime"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("movie: decode payload: %w", err)
	}
	if body.Title == "" {
		return nil, errors.New("movie: Title field missing")
	}

	poster := body.Poster
	if poster == "N/A" {
		poster = ""
	}
	return &MovieDisplay{
		Title:   body.Title,
		Year:    body.Year,
		Rating:  body.IMDBRating,
		Poster:  poster,
		Genre:   body.Genre,
		Runtime: body.Runtime,
	}, nil
}

func coinGlyph(coin string) string {
	if glyph, ok := coinGlyphs[coin]; ok {
		return glyph
	}
	if len(coin) >= 3 {
		return strings.ToUpper(coin[:3])
	}
	return strings.ToUpper(coin)
}

func titleWithCount(base string, count int, unit string) string {
	return fmt.Sprintf("%s (%d %s)", base, count, unit)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// groupThousands renders a price with comma-separated integer groups,
// matching the locale-formatted output of the original data sources.
func groupThousands(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	intPart := formatted
	fracPart := ""
	if idx := strings.IndexByte(formatted, '.'); idx >= 0 {
		intPart, fracPart = formatted[:idx], formatted[idx:]
	}

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var builder strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		builder.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if builder.Len() > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(intPart[i : i+3])
	}

	out := builder.String() + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// configString reads a string config value, tolerating missing keys.
func configString(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	if value, ok := cfg[key].(string); ok {
		return value
	}
	return ""
}

// configFloatString renders a numeric config value for query embedding.
// Snapshot round-trips may surface numbers as float64, int, or string.
func configFloatString(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	switch value := cfg[key].(type) {
	case float64:
		return formatFloat(value)
	case int:
		return strconv.Itoa(value)
	case json.Number:
		return value.String()
	case string:
		return value
	default:
		return ""
	}
}

// configStrings reads a string-slice config value, tolerating both []string
// and the []any shape produced by JSON decoding.
func configStrings(cfg map[string]any, key string) []string {
	if cfg == nil {
		return nil
	}
	switch value := cfg[key].(type) {
	case []string:
		out := make([]string, len(value))
		copy(out, value)
		return out
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
