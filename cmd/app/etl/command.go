package etl

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "emisi.dev/backend/cmd/app/cli"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	ETLService *service.ETL
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "etl",
		Usage: "survey pipeline operations",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "extract, transform and load the survey once",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "override the configured survey location (URL, s3:// URI or path)",
					},
				},
				Action: run,
			},
		},
	}
}

func run(c *cli.Context) error {
	deps, stop, err := cliapp.Populate[CommandDeps](c.Context)
	if err != nil {
		return err
	}
	defer stop()

	var (
		r   *model.ETLRun
		src = c.String("source")
	)
	if src != "" {
		r, err = deps.ETLService.RunSource(c.Context, src)
	} else {
		r, err = deps.ETLService.Run(c.Context)
	}
	if r != nil {
		log.Info().
			Str("evt.name", "cli.etl.run").
			Str("runId", r.RunID).
			Str("status", r.Status).
			Int("rows", r.Rows).
			Int("activities", r.Activities).
			Int("failedBatches", r.FailedBatches).
			Msg("etl run finished")
	}
	if errors.Is(err, service.ErrETLRunning) {
		return cli.Exit("another etl run is in progress", 2)
	}
	return err
}
