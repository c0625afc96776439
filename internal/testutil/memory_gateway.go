package testutil

import (
	"sync"
	"time"

	"github.com/dkalonji/tasbih/internal/notify"
)

// Sent is one immediate notification recorded by MemoryGateway.
type Sent struct {
	Title string
	Body  string
}

// MemoryGateway is a notify.Gateway that records every request for
// assertions.
type MemoryGateway struct {
	mu        sync.Mutex
	Immediate []Sent
	Scheduled map[string]notify.Pending
	Cancelled []string

	// FailScheduleAt makes ScheduleAt return an error when set.
	FailScheduleAt error
}

// NewMemoryGateway creates an empty MemoryGateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{Scheduled: make(map[string]notify.Pending)}
}

func (g *MemoryGateway) SendImmediate(title, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Immediate = append(g.Immediate, Sent{Title: title, Body: body})
	return nil
}

func (g *MemoryGateway) ScheduleAt(id string, fireAt time.Time, title, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailScheduleAt != nil {
		return g.FailScheduleAt
	}
	g.Scheduled[id] = notify.Pending{ID: id, FireAt: fireAt, Title: title, Body: body}
	return nil
}

func (g *MemoryGateway) Cancel(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Cancelled = append(g.Cancelled, id)
	delete(g.Scheduled, id)
	return nil
}

func (g *MemoryGateway) ListScheduled() ([]notify.Pending, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]notify.Pending, 0, len(g.Scheduled))
	for _, p := range g.Scheduled {
		out = append(out, p)
	}
	return out, nil
}

// HasScheduled reports whether a pending notification with id exists.
func (g *MemoryGateway) HasScheduled(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.Scheduled[id]
	return ok
}

// ImmediateTitles returns the titles of all immediate notifications sent.
func (g *MemoryGateway) ImmediateTitles() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	titles := make([]string, 0, len(g.Immediate))
	for _, s := range g.Immediate {
		titles = append(titles, s.Title)
	}
	return titles
}
