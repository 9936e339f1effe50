// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package bot holds the per-instance state the host drives once per
// simulation tick. All calls are synchronous and made from the host's thread.
package bot

import (
	"path/filepath"

	"github.com/ManuGH/kpai/internal/config"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/influence"
	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/policy"
	"github.com/ManuGH/kpai/internal/status"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Instance is one AI player.
type Instance struct {
	id        uuid.UUID
	team      int
	store     *config.Store
	calc      policy.Calculator
	table     influence.Table
	messenger host.Messenger
	sink      *status.Sink
	logger    zerolog.Logger
}

// Option configures an Instance.
type Option func(*Instance)

// WithTeam sets the team the instance plays for.
func WithTeam(team int) Option {
	return func(i *Instance) { i.team = team }
}

// WithMessenger enables in-game debug text through m.
func WithMessenger(m host.Messenger) Option {
	return func(i *Instance) { i.messenger = m }
}

// WithSink replaces the status sink derived from the runtime settings.
func WithSink(s *status.Sink) Option {
	return func(i *Instance) { i.sink = s }
}

// WithInfluenceTable replaces the table read from the data directory.
func WithInfluenceTable(t influence.Table) Option {
	return func(i *Instance) { i.table = t }
}

// NewInstance creates an instance bound to store. The log level follows
// the store's runtime settings. Unless WithInfluenceTable is given, the
// influence table is read from the data directory and written there with
// the stock values first if it is missing.
func NewInstance(store *config.Store, opts ...Option) *Instance {
	rt := store.Runtime()
	i := &Instance{
		id:    uuid.New(),
		store: store,
		calc:  store.Calculator(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.sink == nil {
		i.sink = status.NewSink(rt.StatusPath(), rt.CompressStatus)
	}

	levelErr := log.SetLevel(rt.LogLevel)
	i.logger = log.Derive(func(c *zerolog.Context) {
		*c = c.Str(log.FieldComponent, "bot").
			Str(log.FieldInstanceID, i.id.String()).
			Int(log.FieldTeam, i.team)
	})
	if levelErr != nil {
		i.logger.Warn().Err(levelErr).Str("level", rt.LogLevel).Msg("invalid log level, keeping current")
	}

	if i.table == nil {
		path := filepath.Join(rt.DataDir, influence.FileName)
		t, err := influence.LoadOrInit(path)
		if err != nil {
			i.logger.Warn().Err(err).Str(log.FieldPath, path).Msg("influence table unavailable, using defaults")
			t = influence.DefaultTable()
		}
		i.table = t
	}
	i.logger.Info().
		Str(log.FieldProfile, store.Profile().Name).
		Str(log.FieldPath, i.sink.Path()).
		Bool("compress", i.sink.Compressed()).
		Msg("instance started")
	return i
}

// ID returns the instance identifier used in logs.
func (i *Instance) ID() uuid.UUID { return i.id }

// Team returns the instance's team.
func (i *Instance) Team() int { return i.team }

// Config returns the instance's configuration table.
func (i *Instance) Config() *config.Store { return i.store }

// Close releases the status sink.
func (i *Instance) Close() error {
	err := i.sink.Close()
	i.logger.Info().Msg("instance stopped")
	return err
}
