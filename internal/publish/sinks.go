package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	awsclient "marketplace-datagen/internal/common/aws"
	"marketplace-datagen/internal/common/config"
	"marketplace-datagen/internal/common/database"
	"marketplace-datagen/internal/common/logger"
)

// NewFromConfig opens a client for every enabled sink and returns them with
// a cleanup func that closes the clients. A sink that cannot be initialised
// aborts the whole call after closing what was already opened.
func NewFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) ([]Sink, func() error, error) {
	var (
		sinks   []Sink
		closers []func() error
	)
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) ([]Sink, func() error, error) {
		_ = cleanup()
		return nil, func() error { return nil }, err
	}

	pc := cfg.Publish

	if pc.Redis.Enabled {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return fail(fmt.Errorf("redis sink: %w", err))
		}
		closers = append(closers, rc.Close)
		if err := rc.Ping(ctx); err != nil {
			return fail(fmt.Errorf("redis sink: %w", err))
		}
		sinks = append(sinks, NewRedisSnapshot(rc.Client, pc.Redis.KeyPrefix, time.Duration(pc.Redis.TTL)*time.Second))
	}

	if pc.Elasticsearch.Enabled {
		ec, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return fail(fmt.Errorf("elasticsearch sink: %w", err))
		}
		if err := ec.Ping(ctx); err != nil {
			return fail(fmt.Errorf("elasticsearch sink: %w", err))
		}
		sinks = append(sinks, NewElasticIndexer(ec.Client, pc.Elasticsearch.RFQIndex, pc.Elasticsearch.SupplierIndex, pc.Elasticsearch.BatchSize))
	}

	if pc.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return fail(fmt.Errorf("postgres sink: %w", err))
		}
		closers = append(closers, pg.Close)
		exporter := NewPostgresExporter(pg.DB, pc.Postgres.Table)
		if err := exporter.EnsureTable(ctx); err != nil {
			return fail(fmt.Errorf("postgres sink: %w", err))
		}
		sinks = append(sinks, exporter)
	}

	if pc.SNS.Enabled {
		if pc.SNS.TopicARN == "" {
			return fail(errors.New("sns sink: topic_arn is empty"))
		}
		client, err := awsclient.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return fail(fmt.Errorf("sns sink: %w", err))
		}
		sinks = append(sinks, NewSNSNotifier(client, pc.SNS.TopicARN))
	}

	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Name()
	}
	log.Info("Publish sinks ready", map[string]interface{}{"sinks": names})

	return sinks, cleanup, nil
}
