package registry

import (
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// Widget type keys for the built-in catalog. Adding a new type only requires
// registering another descriptor; no other component changes.
const (
	TypeWeather = "weather"
	TypeProfile = "profile"
	TypeCrypto  = "crypto"
	TypeStock   = "stock"
	TypeJoke    = "joke"
	TypeFact    = "fact"
	TypeAdvice  = "advice"
	TypeCat     = "cat"
	TypeDog     = "dog"
	TypeClock   = "clock"
	TypeGitHub  = "github"
	TypeMovie   = "movie"
)

// CatalogOption customises the built-in catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	clock     func() time.Time
	clockTick time.Duration
}

// WithClock overrides the time source used by the clock widget, mainly for tests.
func WithClock(clock func() time.Time) CatalogOption {
	return func(o *catalogOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithClockTick overrides the clock widget's re-render cadence.
func WithClockTick(every time.Duration) CatalogOption {
	return func(o *catalogOptions) {
		if every > 0 {
			o.clockTick = every
		}
	}
}

// Catalog returns a registry pre-populated with the built-in widget types in
// their documented declaration order.
func Catalog(opts ...CatalogOption) *Registry {
	options := catalogOptions{
		clock:     time.Now,
		clockTick: time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	r := New()

	r.Register(Descriptor{
		Type:        TypeWeather,
		Icon:        "🌤️",
		Title:       "Weather",
		Description: "Current weather conditions",
		Defaults: map[string]any{
			"city":      "Moscow",
			"latitude":  55.7558,
			"longitude": 37.6173,
		},
		Fetch: FetchSpec{
			Group: "openmeteo",
			Route: "forecast",
			Query: func(cfg map[string]any) map[string]string {
				return map[string]string{
					"latitude":        configFloatString(cfg, "latitude"),
					"longitude":       configFloatString(cfg, "longitude"),
					"current_weather": "true",
				}
			},
		},
		Parse: parseWeather,
		TitleOf: func(cfg map[string]any) string {
			return "Weather (" + configString(cfg, "city") + ")"
		},
	})

	r.Register(Descriptor{
		Type:        TypeProfile,
		Icon:        "👤",
		Title:       "Profile",
		Description: "Random user profile",
		Fetch:       FetchSpec{Group: "randomuser", Route: "generate"},
		Parse:       parseProfile,
	})

	r.Register(Descriptor{
		Type:        TypeCrypto,
		Icon:        "₿",
		Title:       "Crypto",
		Description: "Cryptocurrency prices",
		Defaults: map[string]any{
			"coins": []any{"bitcoin", "ethereum"},
		},
		Fetch: FetchSpec{
			Group: "coingecko",
			Route: "simple_price",
			Query: func(cfg map[string]any) map[string]string {
				return map[string]string{
					"ids":                strings.Join(configStrings(cfg, "coins"), ","),
					"vs_currencies":      "usd",
					"include_24hr_change": "true",
				}
			},
		},
		Parse: parseCrypto,
		TitleOf: func(cfg map[string]any) string {
			return titleWithCount("Crypto", len(configStrings(cfg, "coins")), "coins")
		},
	})

	r.Register(Descriptor{
		Type:        TypeStock,
		Icon:        "📈",
		Title:       "Stocks",
		Description: "Stock market quotes",
		Defaults: map[string]any{
			"symbol": "IBM",
		},
		Fetch: FetchSpec{
			Group: "alphavantage",
			Route: "query",
			Query: func(cfg map[string]any) map[string]string {
				return map[string]string{
					"function": "GLOBAL_QUOTE",
					"symbol":   configString(cfg, "symbol"),
					"apikey":   "demo",
				}
			},
		},
		Parse: parseStock,
		TitleOf: func(cfg map[string]any) string {
			return "Stocks (" + configString(cfg, "symbol") + ")"
		},
	})

	r.Register(Descriptor{
		Type:        TypeJoke,
		Icon:        "😂",
		Title:       "Joke",
		Description: "Random one-liner joke",
		Fetch: FetchSpec{
			Group: "jokeapi",
			Route: "any",
			Query: func(map[string]any) map[string]string {
				return map[string]string{"type": "single"}
			},
		},
		Parse: parseJoke,
	})

	r.Register(Descriptor{
		Type:        TypeFact,
		Icon:        "💡",
		Title:       "Fact",
		Description: "Random useless fact",
		Fetch: FetchSpec{
			Group: "uselessfacts",
			Route: "random",
			Query: func(map[string]any) map[string]string {
				return map[string]string{"language": "en"}
			},
		},
		Parse: parseFact,
	})

	r.Register(Descriptor{
		Type:        TypeAdvice,
		Icon:        "💎",
		Title:       "Advice",
		Description: "Advice for the day",
		Fetch:       FetchSpec{Group: "adviceslip", Route: "advice"},
		Parse:       parseAdvice,
	})

	r.Register(Descriptor{
		Type:        TypeCat,
		Icon:        "🐱",
		Title:       "Cats",
		Description: "Random cat picture",
		Fetch:       FetchSpec{Group: "thecatapi", Route: "search"},
		Parse:       parseCat,
	})

	r.Register(Descriptor{
		Type:        TypeDog,
		Icon:        "🐶",
		Title:       "Dogs",
		Description: "Random dog picture",
		Fetch:       FetchSpec{Group: "dogceo", Route: "random"},
		Parse:       parseDog,
	})

	r.Register(Descriptor{
		Type:        TypeClock,
		Icon:        "⏰",
		Title:       "Clock",
		Description: "Current time and date",
		Fetch:       FetchSpec{Local: true},
		Parse:       clockParser(options.clock),
		TickEvery:   options.clockTick,
	})

	r.Register(Descriptor{
		Type:        TypeGitHub,
		Icon:        "🐙",
		Title:       "GitHub",
		Description: "GitHub user statistics",
		Defaults: map[string]any{
			"username": "torvalds",
		},
		Fetch: FetchSpec{
			Group: "github",
			Route: "user",
			Params: func(cfg map[string]any) map[string]any {
				return map[string]any{"username": configString(cfg, "username")}
			},
		},
		Parse: parseGitHub,
		TitleOf: func(cfg map[string]any) string {
			return "GitHub (" + configString(cfg, "username") + ")"
		},
	})

	r.Register(Descriptor{
		Type:        TypeMovie,
		Icon:        "🎬",
		Title:       "Movie",
		Description: "Movie details lookup",
		Defaults: map[string]any{
			"imdb_id": "tt0111161",
			"title":   "The Shawshank Redemption",
		},
		Fetch: FetchSpec{
			Group: "omdb",
			Route: "title",
			Query: func(cfg map[string]any) map[string]string {
				return map[string]string{
					"i":      configString(cfg, "imdb_id"),
					"apikey": "demo",
				}
			},
		},
		Parse: parseMovie,
		TitleOf: func(cfg map[string]any) string {
			return "Movie (" + configString(cfg, "title") + ")"
		},
	})

	return r
}

// Routes returns the go-urlkit route manager configuration covering every
// upstream API the built-in catalog fetches from.
func Routes() *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "openmeteo",
				BaseURL: "https://api.open-meteo.com",
				Paths:   map[string]string{"forecast": "/v1/forecast"},
			},
			{
				Name:    "randomuser",
				BaseURL: "https://randomuser.me",
				Paths:   map[string]string{"generate": "/api/"},
			},
			{
				Name:    "coingecko",
				BaseURL: "https://api.coingecko.com",
				Paths:   map[string]string{"simple_price": "/api/v3/simple/price"},
			},
			{
				Name:    "alphavantage",
				BaseURL: "https://www.alphavantage.co",
				Paths:   map[string]string{"query": "/query"},
			},
			{
				Name:    "jokeapi",
				BaseURL: "https://v2.jokeapi.dev",
				Paths:   map[string]string{"any": "/joke/Any"},
			},
			{
				Name:    "uselessfacts",
				BaseURL: "https://uselessfacts.jsph.pl",
				Paths:   map[string]string{"random": "/random.json"},
			},
			{
				Name:    "adviceslip",
				BaseURL: "https://api.adviceslip.com",
				Paths:   map[string]string{"advice": "/advice"},
			},
			{
				Name:    "thecatapi",
				BaseURL: "https://api.thecatapi.com",
				Paths:   map[string]string{"search": "/v1/images/search"},
			},
			{
				Name:    "dogceo",
				BaseURL: "https://dog.ceo",
				Paths:   map[string]string{"random": "/api/breeds/image/random"},
			},
			{
				Name:    "github",
				BaseURL: "https://api.github.com",
				Paths:   map[string]string{"user": "/users/:username"},
			},
			{
				Name:    "omdb",
				BaseURL: "https://www.omdbapi.com",
				Paths:   map[string]string{"title": "/"},
			},
		},
	}
}
