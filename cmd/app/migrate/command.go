package migrate

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "emisi.dev/backend/cmd/app/cli"
	"emisi.dev/backend/internal/repo"
)

type CommandDeps struct {
	fx.In

	Schema *repo.Schema
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create missing tables and indexes",
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Populate[CommandDeps](c.Context)
			if err != nil {
				return err
			}
			defer stop()

			if err := deps.Schema.Migrate(c.Context); err != nil {
				return err
			}
			log.Info().Str("evt.name", "cli.migrate").Msg("schema is up to date")
			return nil
		},
	}
}
