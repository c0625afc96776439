package notify

import (
	"log/slog"
	"sync"
	"time"
)

// LogGateway records notification requests to a slog logger and tracks
// scheduled entries in memory. It is the default gateway for environments
// without a desktop notifier; the watch command prints its output.
type LogGateway struct {
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]Pending
}

// NewLogGateway creates a LogGateway writing to the given logger.
func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger, pending: make(map[string]Pending)}
}

func (g *LogGateway) SendImmediate(title, body string) error {
	g.logger.Info("notification", "title", title, "body", body)
	return nil
}

func (g *LogGateway) ScheduleAt(id string, fireAt time.Time, title, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending[id] = Pending{ID: id, FireAt: fireAt, Title: title, Body: body}
	g.logger.Info("notification scheduled", "id", id, "fire_at", fireAt.Format(time.RFC3339), "title", title)
	return nil
}

func (g *LogGateway) Cancel(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pending[id]; ok {
		delete(g.pending, id)
		g.logger.Info("notification cancelled", "id", id)
	}
	return nil
}

func (g *LogGateway) ListScheduled() ([]Pending, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Pending, 0, len(g.pending))
	for _, p := range g.pending {
		out = append(out, p)
	}
	return out, nil
}

// FireDue delivers and removes every pending notification whose fire time
// has passed. The watch loop calls this on each tick, standing in for the
// OS scheduler that owns delivery on mobile.
func (g *LogGateway) FireDue(now time.Time) {
	g.mu.Lock()
	var due []Pending
	for id, p := range g.pending {
		if !p.FireAt.After(now) {
			due = append(due, p)
			delete(g.pending, id)
		}
	}
	g.mu.Unlock()

	for _, p := range due {
		_ = g.SendImmediate(p.Title, p.Body)
	}
}
