//go:build wireinject
// +build wireinject

package di

import (
	"AstroInsight/pkg/config"
	"AstroInsight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideFixture,
		ProvideEphemeris,
		ProvideWorkers,

		// Use cases
		ProvideChartOptions,
		ProvideChartService,

		// Transport
		ProvideLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeToolkit wires the chart use cases without the HTTP server.
func InitializeToolkit(cfg *config.Config) (*Toolkit, error) {
	wire.Build(
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideCache,
		ProvideFixture,
		ProvideEphemeris,
		ProvideChartOptions,
		ProvideChartService,
		ProvideToolkit,
	)
	return &Toolkit{}, nil
}
