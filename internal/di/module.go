package di

import (
	"github.com/gearmart/checkout/internal/adapter/ledger"
	"github.com/gearmart/checkout/internal/app"
	"github.com/gearmart/checkout/internal/config"
	"github.com/gearmart/checkout/internal/logger"
	"github.com/gearmart/checkout/internal/pkg/auth"
	"github.com/gearmart/checkout/internal/server/http/handlers"
	"github.com/gearmart/checkout/internal/server/http/middleware"
	"github.com/gearmart/checkout/internal/server/http/router"
	"github.com/gearmart/checkout/internal/settlement"
	"github.com/gearmart/checkout/internal/storage/postgres"
	"github.com/gearmart/checkout/internal/streak"
	"github.com/gearmart/checkout/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		ledger.Module,
		streak.Module,
		settlement.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.CheckoutFacade) handlers.CheckoutFacade { return f },
			func(f *app.CheckoutFacade) middleware.TokenParser { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
