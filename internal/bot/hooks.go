// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package bot

import (
	"fmt"

	"github.com/ManuGH/kpai/internal/geo"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/influence"
	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/metrics"
	"github.com/ManuGH/kpai/internal/status"
	"github.com/rs/zerolog"
)

// Update is the per-tick entry point. It runs GameFrame every frame and
// DumpStatus every statusInterval frames. The snapshot's team wins over
// the instance's own.
func (i *Instance) Update(s host.Snapshot) {
	if s.Team != i.team {
		i.logger.Warn().
			Int("snapshot_team", s.Team).
			Int(log.FieldFrame, s.Frame).
			Msg("snapshot team differs from instance team")
	}
	i.GameFrame(s.Team, s.Frame)
	if s.Frame%i.store.Runtime().StatusInterval == 0 {
		i.DumpStatus(s)
	}
}

// GameFrame is the per-tick diagnostic hook for team. With debugMessages
// on, it posts the frame number in game once per game second.
func (i *Instance) GameFrame(team, frame int) {
	metrics.RecordFrame(team)
	i.logger.Debug().Int(log.FieldFrame, frame).Msg("frame")

	if i.messenger == nil || !i.store.Tuning().DebugMessages {
		return
	}
	if frame%i.store.Host().GameSpeed != 0 {
		return
	}
	if err := i.messenger.SendTextMessage(team, fmt.Sprintf("kpai: frame %d", frame)); err != nil {
		i.logger.Warn().Err(err).Int(log.FieldFrame, frame).Msg("send text message failed")
	}
}

// DumpStatus enumerates geo spots and units of s into the log and the
// status file. It never modifies s.
func (i *Instance) DumpStatus(s host.Snapshot) {
	geos := geo.Dedupe(s.Geos, geo.DuplicateRadius)

	i.logger.Info().
		Int(log.FieldFrame, s.Frame).
		Int(log.FieldGeoCount, len(geos)).
		Int(log.FieldFriendCount, len(s.Friends)).
		Int(log.FieldFoeCount, len(s.Foes)).
		Msg("status")

	for _, g := range geos {
		i.logger.Trace().Float64("x", g.X).Float64("z", g.Z).Msg("geo spot")
	}
	logUnits(i.logger, "friendly", s.Friends)
	logUnits(i.logger, "enemy", s.Foes)
	metrics.SetUnitsSeen(len(s.Friends), len(s.Foes))

	m := i.influenceMap(s)
	snap := s
	snap.Geos = geos
	if err := i.sink.Write(status.FromSnapshot(snap, m.Rows())); err != nil {
		i.logger.Error().Err(err).Int(log.FieldFrame, s.Frame).Msg("status dump failed")
	}
}

func logUnits(logger zerolog.Logger, side string, units []host.Unit) {
	for _, u := range units {
		logger.Trace().
			Str("side", side).
			Int(log.FieldUnitID, u.ID).
			Str(log.FieldUnitClass, u.Name).
			Float64("x", u.Pos.X).
			Float64("y", u.Pos.Y).
			Float64("z", u.Pos.Z).
			Msg("unit")
	}
}

func (i *Instance) influenceMap(s host.Snapshot) *influence.Map {
	m := influence.NewMap(i.table, s.Map, i.store.Host().SquareSize)
	if skipped := m.Update(s.Friends, s.Foes); skipped > 0 {
		i.logger.Debug().Int("skipped", skipped).Msg("units without influence entry")
	}
	return m
}
