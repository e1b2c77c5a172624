package registry

// Detail is a labelled value rendered inside a widget card.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// WeatherDisplay is the parsed open-meteo current weather block.
type WeatherDisplay struct {
	Icon        string   `json:"icon"`
	Temperature string   `json:"temperature"`
	Description string   `json:"description"`
	Details     []Detail `json:"details"`
}

// ProfileDisplay is a random user profile card.
type ProfileDisplay struct {
	Avatar   string `json:"avatar"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// CryptoQuote is one priced coin inside a CryptoDisplay.
type CryptoQuote struct {
	Coin   string `json:"coin"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Change string `json:"change"`
}

// CryptoDisplay lists quotes sorted by coin id for deterministic rendering.
type CryptoDisplay struct {
	Quotes []CryptoQuote `json:"quotes"`
}

// StockDisplay is a single alphavantage global quote.
type StockDisplay struct {
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
}

// TextDisplay carries the one-line content widgets (joke, fact, advice).
type TextDisplay struct {
	Text string `json:"text"`
}

// ImageDisplay carries image-only widgets (cat, dog).
type ImageDisplay struct {
	URL string `json:"url"`
}

// ClockDisplay is computed locally on every tick.
type ClockDisplay struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// GitHubDisplay summarises a GitHub user profile.
type GitHubDisplay struct {
	Avatar    string `json:"avatar"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Repos     int    `json:"repos"`
}

// MovieDisplay summarises an OMDb title lookup.
type MovieDisplay struct {
	Title   string `json:"title"`
	Year    string `json:"year"`
	Rating  string `json:"rating"`
	Poster  string `json:"poster"`
	Genre   string `json:"genre"`
	Runtime string `json:"runtime"`
}
