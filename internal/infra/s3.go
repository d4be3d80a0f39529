package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/app/appconfig"
)

// S3 builds the client used by s3:// ETL sources. Static credentials are used when
// configured, the default AWS chain otherwise.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.AWSRegion),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("infra: s3: failed to load aws config")
		return nil, err
	}

	return s3.NewFromConfig(cfg), nil
}
