package main

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const maxCSPReportBytes = 64 << 10

// reportStore archives CSP violation reports.
type reportStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3ReportStore struct {
	client reportStore
	bucket string
}

func (s *s3ReportStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	params.Bucket = aws.String(s.bucket)
	return s.client.PutObject(ctx, params, optFns...)
}

// setupReportStore returns nil when no bucket is configured; reports are then only logged.
func setupReportStore(ctx context.Context, region, bucket string) reportStore {
	if bucket == "" {
		return nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load AWS config, CSP reports will only be logged")
		return nil
	}
	return &s3ReportStore{client: s3.NewFromConfig(cfg), bucket: bucket}
}

func pingHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("pong"))
	})
}

// dataHandler serves the dataset document exactly as the source returned it.
func dataHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sublog := zerolog.Ctx(r.Context())

		data, err := deps.loader.Source.Fetch(r.Context())
		if err != nil {
			sublog.Error().Err(err).Msg("failed to fetch dataset for passthrough")
			http.Error(w, loadErrorMessage, statusForError(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(data)
	})
}

func cspReportHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx)

		b, err := io.ReadAll(io.LimitReader(r.Body, maxCSPReportBytes))
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read CSP report")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cspReport := string(b)

		if deps.reports == nil {
			logger.Warn().Str("report", cspReport).Msg("CSP violation")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		currentMonth := time.Now().UTC().Format("2006-01")
		logKey := fmt.Sprintf("csp-violations/%s/%x", currentMonth, sha1.Sum(b))

		_, err = deps.reports.PutObject(ctx, &s3.PutObjectInput{
			Body:        bytes.NewReader(b),
			Key:         aws.String(logKey),
			ContentType: aws.String("application/csp-report"),
		})
		if err != nil {
			logger.Warn().Err(err).Str("key", logKey).Msg("failed to upload CSP report to S3 bucket")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
