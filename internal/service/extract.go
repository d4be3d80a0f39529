package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoSource         = errors.New("extract: no source configured")
	ErrUnexpectedStatus = errors.New("extract: unexpected http status")
)

const extractMaxBytes = 64 << 20

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Extract fetches the survey sheet export as CSV records, header excluded.
type Extract struct {
	http *http.Client
	s3   objectGetter

	attempts uint
	delay    time.Duration
}

func NewExtract(s3Client *s3.Client) *Extract {
	e := &Extract{
		http:     &http.Client{Timeout: time.Minute},
		attempts: 3,
		delay:    time.Second,
	}
	if s3Client != nil {
		e.s3 = s3Client
	}
	return e
}

// Records reads every data row of the sheet located by uri.
func (s *Extract) Records(ctx context.Context, uri string) ([][]string, error) {
	body, err := s.fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	return ParseCSV(bytes.NewReader(body))
}

func (s *Extract) fetch(ctx context.Context, uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrNoSource
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// bare and windows style paths
		return os.ReadFile(uri)
	}

	switch u.Scheme {
	case "http", "https":
		return s.fetchHTTP(ctx, uri)
	case "s3":
		return s.fetchS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case "file":
		return os.ReadFile(u.Path)
	default:
		return nil, errors.Errorf("extract: unsupported source scheme %q", u.Scheme)
	}
}

func (s *Extract) fetchHTTP(ctx context.Context, uri string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := s.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				err = errors.Wrapf(ErrUnexpectedStatus, "%s returned %d", uri, resp.StatusCode)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body, err = io.ReadAll(io.LimitReader(resp.Body, extractMaxBytes))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "etl.extract.retry").
				Err(err).
				Uint("attempt", n+1).
				Msg("failed to fetch survey sheet, retrying")
		}),
	)
	return body, err
}

func (s *Extract) fetchS3(ctx context.Context, bucket, key string) ([]byte, error) {
	if s.s3 == nil {
		return nil, errors.New("extract: s3 client unavailable")
	}
	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "extract: get s3://%s/%s", bucket, key)
	}
	defer out.Body.Close()
	return io.ReadAll(io.LimitReader(out.Body, extractMaxBytes))
}

// ParseCSV reads CSV records and drops the header row. Row widths are not enforced here.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "extract: read csv")
	}
	if len(records) == 0 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
