package infra

import (
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/pkg/bininfo"
)

// SentryInit initializes sentry with side-effect
func SentryInit(conf *appconfig.Config) error {
	if conf.SentryDSN == "" {
		log.Warn().
			Str("evt.name", "infra.sentry.disabled").
			Msg("sentry is disabled due to missing DSN")
		return nil
	}

	log.Info().
		Str("evt.name", "infra.sentry.init").
		Msg("initializing sentry")
	return sentry.Init(sentry.ClientOptions{
		Dsn:              conf.SentryDSN,
		Release:          "emisibackend@" + bininfo.Version,
		Environment:      envName(conf),
		Debug:            conf.DevMode,
		AttachStacktrace: true,
		TracesSampleRate: 0.05,
	})
}

func envName(conf *appconfig.Config) string {
	if conf.DevMode {
		return "dev"
	}
	return "prod"
}
