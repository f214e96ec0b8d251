package streak

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gearmart/checkout/internal/adapter/ledger"
)

// Module provides the streak tracker to the fx container.
var Module = fx.Provide(newTracker)

type trackerParams struct {
	fx.In

	Client ledger.Client
	Logger *slog.Logger
}

func newTracker(p trackerParams) *Tracker {
	return NewTracker(p.Client, p.Logger)
}
