package server

import (
	"go.uber.org/fx"

	"emisi.dev/backend/internal/server/httpserver"
	"emisi.dev/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Sessions),
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
