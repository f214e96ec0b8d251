package ledger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gearmart/checkout/internal/config"
)

// Module exposes ledger client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.LedgerAddress, p.Logger)
}
