package domain

import "context"

// Publisher delivers derived-view events to downstream consumers. The local
// WebSocket hub and the optional Redis signal bus both implement it.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
