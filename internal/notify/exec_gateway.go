package notify

import (
	"log/slog"
	"os/exec"
	"time"
)

// ExecGateway wraps another gateway and additionally delivers immediate
// notifications through notify-send when the binary is available. Exec
// failures are logged and never propagated; the wrapped gateway's record
// of the request already succeeded.
type ExecGateway struct {
	inner  *LogGateway
	logger *slog.Logger
	binary string
}

// NewExecGateway creates an ExecGateway over inner. It returns inner
// unchanged when notify-send is not on PATH.
func NewExecGateway(inner *LogGateway, logger *slog.Logger) Gateway {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return inner
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecGateway{inner: inner, logger: logger, binary: path}
}

func (g *ExecGateway) SendImmediate(title, body string) error {
	if err := exec.Command(g.binary, title, body).Run(); err != nil {
		g.logger.Warn("notify-send failed", "error", err)
	}
	return g.inner.SendImmediate(title, body)
}

func (g *ExecGateway) ScheduleAt(id string, fireAt time.Time, title, body string) error {
	return g.inner.ScheduleAt(id, fireAt, title, body)
}

func (g *ExecGateway) Cancel(id string) error {
	return g.inner.Cancel(id)
}

func (g *ExecGateway) ListScheduled() ([]Pending, error) {
	return g.inner.ListScheduled()
}

// FireDue delivers due scheduled notifications through this gateway so
// they also reach the desktop notifier.
func (g *ExecGateway) FireDue(now time.Time) {
	pending, _ := g.inner.ListScheduled()
	for _, p := range pending {
		if !p.FireAt.After(now) {
			_ = g.inner.Cancel(p.ID)
			_ = g.SendImmediate(p.Title, p.Body)
		}
	}
}
