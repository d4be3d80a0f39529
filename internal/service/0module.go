package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewETL,
		NewAdmin,
		NewHealth,
		NewLoader,
		NewReport,
		NewExport,
		NewAccount,
		NewExtract,
		NewDashboard,
		NewStatistics,
	))
}
