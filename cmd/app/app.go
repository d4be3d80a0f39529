package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"emisi.dev/backend/cmd/app/etl"
	"emisi.dev/backend/cmd/app/migrate"
	"emisi.dev/backend/cmd/app/server"
	"emisi.dev/backend/cmd/app/user"
	"emisi.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "emisibackend",
		Description: "Campus carbon emission dashboard backend. Loads the commute and activity survey into PostgreSQL and serves filtered tables, statistics and reports over fiber.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			etl.Command(),
			migrate.Command(),
			user.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
