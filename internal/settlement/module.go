package settlement

import (
	"go.uber.org/fx"

	"github.com/gearmart/checkout/internal/config"
)

// Module provides the order-intake handoff builder.
var Module = fx.Provide(newHandoff)

type handoffParams struct {
	fx.In

	Config *config.Config
}

func newHandoff(p handoffParams) *Handoff {
	return NewHandoff(p.Config.IntakeDestination)
}
