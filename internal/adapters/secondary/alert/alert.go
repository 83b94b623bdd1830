// Package alert raises the audible and desktop cues for incoming
// notifications.
package alert

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

// Tones for the two notification families. Fleet events sit a third
// above ticket events so operators can tell them apart without looking.
const (
	ticketFreq = 440.0
	fleetFreq  = 554.4
	toneMillis = 300
)

// Beeper plays a short tone for each notification and, when enabled,
// raises a desktop notification as well. It implements ports.Alerter.
type Beeper struct {
	desktop bool
	logger  *slog.Logger
}

var _ ports.Alerter = (*Beeper)(nil)

// NewBeeper creates an alerter. desktop controls whether a desktop
// notification accompanies the tone.
func NewBeeper(desktop bool, logger *slog.Logger) *Beeper {
	return &Beeper{
		desktop: desktop,
		logger:  logger.With("component", "alerter"),
	}
}

// Alert plays the cue for n. Failures are logged and swallowed; a broken
// sound device must never break notification delivery.
func (b *Beeper) Alert(n domain.Notification) {
	freq := ticketFreq
	if n.Kind.IsFleet() {
		freq = fleetFreq
	}

	if err := beeep.Beep(freq, toneMillis); err != nil {
		b.logger.Debug("audio cue failed", "kind", n.Kind, "error", err)
	}

	if !b.desktop {
		return
	}
	if err := beeep.Notify("Sistema de Tickets", n.DisplayText, ""); err != nil {
		b.logger.Debug("desktop notification failed", "kind", n.Kind, "error", err)
	}
}

// Silent is an Alerter that does nothing, for headless runs and tests.
type Silent struct{}

func (Silent) Alert(domain.Notification) {}
