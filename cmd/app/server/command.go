package server

import "github.com/urfave/cli/v2"

func Command() *cli.Command {
	return &cli.Command{
		Name:    "start",
		Aliases: []string{"serve"},
		Usage:   "start the HTTP API and, when enabled, the periodic ETL worker",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}
