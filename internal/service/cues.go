package service

import (
	"io"
	"log/slog"

	"github.com/dkalonji/tasbih/internal/domain"
)

// Cues requests low-latency tap feedback. Implementations must never
// block; failures are logged and the tap proceeds regardless.
type Cues interface {
	Click(s domain.Schedule)
	Complete(s domain.Schedule)
}

// NoopCues requests nothing.
type NoopCues struct{}

func (NoopCues) Click(domain.Schedule)    {}
func (NoopCues) Complete(domain.Schedule) {}

// BellCues rings the terminal bell as the local stand-in for the click
// and completion sounds, honoring the schedule's sound preference.
type BellCues struct {
	W      io.Writer
	Logger *slog.Logger
}

func (b BellCues) Click(s domain.Schedule) {
	b.ring(s, 1)
}

func (b BellCues) Complete(s domain.Schedule) {
	b.ring(s, 2)
}

func (b BellCues) ring(s domain.Schedule, times int) {
	if !s.SoundEnabled || s.Volume <= 0 || b.W == nil {
		return
	}
	for i := 0; i < times; i++ {
		if _, err := b.W.Write([]byte("\a")); err != nil {
			if b.Logger != nil {
				b.Logger.Warn("feedback cue failed", "error", err)
			}
			return
		}
	}
}
