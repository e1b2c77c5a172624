package editor

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-dashboard/internal/registry"
)

// Kind enumerates the input controls a field can render as.
type Kind string

const (
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindText        Kind = "text"
)

// Option is one selectable value for a constrained field.
type Option struct {
	Value string
	Label string
}

// Field describes one editable configuration entry for a widget type.
type Field struct {
	Key         string
	Kind        Kind
	Label       string
	Options     []Option
	Placeholder string
}

// Editor resolves the editable fields for each widget type, validates form
// submissions against them, and derives computed configuration entries.
type Editor struct {
	registry *registry.Registry
}

// New builds an editor over the type registry.
func New(reg *registry.Registry) *Editor {
	return &Editor{registry: reg}
}

// FieldsFor returns the ordered editable fields for a widget type. Types
// without settings return an empty slice; unknown types return the registry
// error.
func (e *Editor) FieldsFor(widgetType string) ([]Field, error) {
	descriptor, err := e.registry.Lookup(widgetType)
	if err != nil {
		return nil, err
	}

	switch descriptor.Type {
	case registry.TypeWeather:
		return []Field{{
			Key:     "city",
			Kind:    KindSelect,
			Label:   "City",
			Options: optionsFromValues(CityNames),
		}}, nil
	case registry.TypeCrypto:
		options := make([]Option, 0, len(Coins))
		for _, coin := range Coins {
			options = append(options, Option{Value: coin, Label: titleCase(coin)})
		}
		return []Field{{
			Key:     "coins",
			Kind:    KindMultiSelect,
			Label:   "Cryptocurrencies",
			Options: options,
		}}, nil
	case registry.TypeStock:
		return []Field{{
			Key:         "symbol",
			Kind:        KindText,
			Label:       "Stock symbol",
			Placeholder: "e.g. IBM, AAPL",
		}}, nil
	case registry.TypeGitHub:
		return []Field{{
			Key:         "username",
			Kind:        KindText,
			Label:       "GitHub username",
			Placeholder: "e.g. torvalds",
		}}, nil
	case registry.TypeMovie:
		options := make([]Option, 0, len(MovieIDs))
		for _, id := range MovieIDs {
			options = append(options, Option{Value: id, Label: PopularMovies[id]})
		}
		return []Field{{
			Key:     "imdb_id",
			Kind:    KindSelect,
			Label:   "Movie",
			Options: options,
		}}, nil
	default:
		return []Field{}, nil
	}
}

// Commit validates form values for the widget type, derives computed entries,
// and returns the updated configuration. The current configuration is never
// mutated; unknown form keys are ignored.
func (e *Editor) Commit(widgetType string, current, form map[string]any) (map[string]any, error) {
	descriptor, err := e.registry.Lookup(widgetType)
	if err != nil {
		return nil, err
	}

	next := make(map[string]any, len(current)+2)
	for key, val := range current {
		next[key] = val
	}

	errs := validation.Errors{}
	switch descriptor.Type {
	case registry.TypeWeather:
		city := stringValue(form, "city")
		coords, known := Cities[city]
		switch {
		case city == "":
			errs["city"] = validation.NewError("validation_required", "city is required")
		case !known:
			errs["city"] = validation.NewError("validation_in_invalid", "city is not in the lookup table")
		default:
			next["city"] = city
			next["latitude"] = coords.Lat
			next["longitude"] = coords.Lon
		}
	case registry.TypeCrypto:
		// Empty selections pass through: the widget simply renders zero
		// quotes until the user picks coins again.
		coins, ok := stringsValue(form, "coins")
		if ok {
			for _, coin := range coins {
				if !containsString(Coins, coin) {
					errs["coins"] = validation.NewError("validation_in_invalid", "unknown coin "+coin)
					break
				}
			}
			if _, bad := errs["coins"]; !bad {
				next["coins"] = toAnySlice(coins)
			}
		}
	case registry.TypeStock:
		symbol := strings.ToUpper(strings.TrimSpace(stringValue(form, "symbol")))
		if symbol == "" {
			errs["symbol"] = validation.NewError("validation_required", "symbol is required")
		} else {
			next["symbol"] = symbol
		}
	case registry.TypeGitHub:
		username := strings.TrimSpace(stringValue(form, "username"))
		if username == "" {
			errs["username"] = validation.NewError("validation_required", "username is required")
		} else {
			next["username"] = username
		}
	case registry.TypeMovie:
		id := stringValue(form, "imdb_id")
		title, known := PopularMovies[id]
		switch {
		case id == "":
			errs["imdb_id"] = validation.NewError("validation_required", "imdb_id is required")
		case !known:
			errs["imdb_id"] = validation.NewError("validation_in_invalid", "movie is not in the lookup table")
		default:
			next["imdb_id"] = id
			next["title"] = title
		}
	}

	if len(errs) > 0 {
		return nil, errs.Filter()
	}
	return next, nil
}

func optionsFromValues(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Value: value, Label: value})
	}
	return options
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func stringValue(form map[string]any, key string) string {
	raw, ok := form[key]
	if !ok {
		return ""
	}
	if str, ok := raw.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

func stringsValue(form map[string]any, key string) ([]string, bool) {
	raw, ok := form[key]
	if !ok {
		return nil, false
	}
	switch values := raw.(type) {
	case []string:
		return values, true
	case []any:
		out := make([]string, 0, len(values))
		for _, value := range values {
			if str, ok := value.(string); ok {
				out = append(out, str)
			}
		}
		return out, true
	case string:
		if values == "" {
			return []string{}, true
		}
		parts := strings.Split(values, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, true
	}
	return nil, false
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}
