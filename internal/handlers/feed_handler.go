package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/franciscoedibles/storefront/internal/events"
)

// OrderFeed delivers order events to a subscriber until the returned
// cancel function is called.
type OrderFeed interface {
	SubscribeOrders(handler func(events.OrderEvent)) (func(), error)
}

// FeedHandler streams order events to the admin order list as
// server-sent events, so the back office sees new orders and status
// changes without polling.
type FeedHandler struct {
	feed   OrderFeed
	logger *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed OrderFeed, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		logger: logger,
	}
}

// Stream handles GET /api/admin/orders/feed. The stream stays open until
// the client disconnects; the subscription is cancelled on the way out.
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// buffered so a slow client drops events instead of blocking the bus
	eventCh := make(chan events.OrderEvent, 16)

	unsubscribe, err := h.feed.SubscribeOrders(func(event events.OrderEvent) {
		select {
		case eventCh <- event:
		default:
		}
	})
	if err != nil {
		h.logger.Error("failed to subscribe to order feed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Order feed unavailable")
		return
	}
	defer unsubscribe()

	// long-lived stream, the server write timeout must not apply
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-eventCh:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn("failed to marshal order event", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
