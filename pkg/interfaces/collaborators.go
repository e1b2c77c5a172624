package interfaces

import "context"

// Fetcher retrieves the raw payload for a fully resolved fetch target. The
// dashboard core never interprets headers, cookies, or auth; anything the
// upstream needs must already be embedded in the target URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// Renderer turns a widget's display model into a host-specific visual
// representation. The core orchestrates fetch and parse; painting is the
// host application's concern.
type Renderer interface {
	Render(widgetType string, model any) (string, error)
}
