package user

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "emisi.dev/backend/cmd/app/cli"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util"
)

type CommandDeps struct {
	fx.In

	AccountService *service.Account
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage dashboard accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "create a dashboard account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"EMISI_NEW_USER_PASSWORD"}},
					&cli.BoolFlag{Name: "admin", Usage: "grant access to the admin API"},
				},
				Action: add,
			},
		},
	}
}

func add(c *cli.Context) error {
	request := types.CreateUserRequest{
		Username: c.String("username"),
		Password: c.String("password"),
		IsAdmin:  c.Bool("admin"),
	}
	if err := util.NewValidator().Struct(request); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	deps, stop, err := cliapp.Populate[CommandDeps](c.Context)
	if err != nil {
		return err
	}
	defer stop()

	created, err := deps.AccountService.CreateUser(c.Context, request.Username, request.Password, request.IsAdmin)
	if err != nil {
		return err
	}
	if !created {
		return cli.Exit("username is taken", 1)
	}
	log.Info().
		Str("evt.name", "cli.user.add").
		Str("username", request.Username).
		Bool("isAdmin", request.IsAdmin).
		Msg("account created")
	return nil
}
