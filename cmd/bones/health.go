package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/config"
	"github.com/dmitrymomot/bones/pkg/datastore"
	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/redis"
	"github.com/dmitrymomot/bones/pkg/searchindex"
)

type probe struct {
	name  string
	check func(ctx context.Context) error
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check MongoDB, Redis and OpenSearch connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var failed []error
			for _, p := range a.probes() {
				err := p.check(ctx)
				status := "ok"
				if err != nil {
					status = "failed"
					failed = append(failed, fmt.Errorf("%s: %w", p.name, err))
					a.log.ErrorContext(ctx, "health check failed", logger.Component(p.name), logger.Error(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", p.name, status)
			}
			return errors.Join(failed...)
		},
	}
}

func (a *app) probes() []probe {
	return []probe{
		{"mongodb", func(ctx context.Context) error {
			var cfg datastore.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			client, err := datastore.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.WithoutCancel(ctx))
			return datastore.Healthcheck(client)(ctx)
		}},
		{"redis", func(ctx context.Context) error {
			var cfg redis.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			client, err := redis.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()
			return redis.Healthcheck(client)(ctx)
		}},
		{"opensearch", func(ctx context.Context) error {
			var cfg searchindex.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			_, err := searchindex.Connect(ctx, cfg)
			return err
		}},
	}
}
