// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package bot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/kpai/internal/config"
	"github.com/ManuGH/kpai/internal/geo"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/influence"
	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/policy"
	"github.com/ManuGH/kpai/internal/status"
	"github.com/ManuGH/kpai/internal/unitclass"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeMessenger struct {
	sent  []string
	teams []int
	err   error
}

func (f *fakeMessenger) SendTextMessage(team int, text string) error {
	f.sent = append(f.sent, text)
	f.teams = append(f.teams, team)
	return f.err
}

func newTestStore(t *testing.T, dataDir string, overrides map[string]any) *config.Store {
	t.Helper()
	store, err := config.NewLoader("", host.DefaultConstants(),
		config.WithOverrides(overrides),
		config.WithoutEnv(),
		config.WithDataDir(dataDir),
	).Load()
	require.NoError(t, err)
	return store
}

func newTestInstance(t *testing.T, overrides map[string]any, opts ...Option) (*Instance, string) {
	t.Helper()
	store := newTestStore(t, t.TempDir(), overrides)

	path := filepath.Join(t.TempDir(), "status.txt")
	opts = append([]Option{WithSink(status.NewSink(path, false)), WithTeam(2)}, opts...)
	inst := NewInstance(store, opts...)
	t.Cleanup(func() { _ = inst.Close() })
	return inst, path
}

func TestNewInstance(t *testing.T) {
	inst, _ := newTestInstance(t, nil)
	assert.NotEqual(t, uuid.Nil, inst.ID())
	assert.Equal(t, 2, inst.Team())
	assert.Equal(t, policy.ProfileBaseline, inst.Config().Profile().Name)
}

func TestUpdate_DumpsEveryInterval(t *testing.T) {
	inst, path := newTestInstance(t, nil)

	for frame := 1; frame <= 12; frame++ {
		inst.Update(host.Snapshot{Team: 2, Frame: frame, Map: host.MapInfo{Width: 64, Height: 64}})
	}

	rep, err := status.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Frame, "last dump happens on a multiple of the interval")
	assert.Equal(t, host.MapInfo{Width: 64, Height: 64}, rep.Map)
}

func TestGameFrame_DebugMessages(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		want      []string
	}{
		{name: "disabled", overrides: nil, want: nil},
		{
			name:      "enabled",
			overrides: map[string]any{"debugMessages": 1},
			want:      []string{"kpai: frame 0", "kpai: frame 30", "kpai: frame 60"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMessenger{}
			inst, _ := newTestInstance(t, tt.overrides, WithMessenger(m))
			for frame := 0; frame <= 61; frame++ {
				inst.GameFrame(2, frame)
			}
			assert.Equal(t, tt.want, m.sent)
		})
	}
}

func TestGameFrame_MessengerErrorIsNotFatal(t *testing.T) {
	m := &fakeMessenger{err: errors.New("host refused")}
	inst, _ := newTestInstance(t, map[string]any{"debugMessages": true}, WithMessenger(m))
	assert.NotPanics(t, func() { inst.GameFrame(2, 30) })
	assert.Len(t, m.sent, 1)
}

func TestUpdate_UsesSnapshotTeam(t *testing.T) {
	m := &fakeMessenger{}
	inst, _ := newTestInstance(t, map[string]any{"debugMessages": 1}, WithMessenger(m))

	inst.Update(host.Snapshot{Team: 2, Frame: 30, Map: host.MapInfo{Width: 32, Height: 32}})
	inst.Update(host.Snapshot{Team: 5, Frame: 60, Map: host.MapInfo{Width: 32, Height: 32}})

	assert.Equal(t, []int{2, 5}, m.teams)
	assert.Equal(t, 2, inst.Team())
}

func TestNewInstance_AppliesLogLevel(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.Config{Level: "info", Output: &buf})
	t.Cleanup(func() { log.Configure(log.Config{}) })

	dir := t.TempDir()
	path := filepath.Join(dir, "kpai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: error\n"), 0600))
	store, err := config.NewLoader(path, host.DefaultConstants(), config.WithoutEnv(), config.WithDataDir(dir)).Load()
	require.NoError(t, err)
	require.Equal(t, "error", store.Runtime().LogLevel)

	inst := NewInstance(store, WithSink(status.NewSink(filepath.Join(dir, "status.txt"), false)))
	require.NoError(t, inst.Close())

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.NotContains(t, buf.String(), `"level":"info"`)
}

func TestNewInstance_InfluenceTableFromDataDir(t *testing.T) {
	snap := host.Snapshot{
		Map:     host.MapInfo{Width: 256, Height: 256},
		Geos:    []geo.Vec3{{X: 1000, Z: 1000}, {X: 200, Z: 200}},
		Friends: []host.Unit{{ID: 1, Name: "kernel", Pos: geo.Vec3{X: 100, Z: 100}}},
		Foes:    []host.Unit{{ID: 2, Name: "carrier", Pos: geo.Vec3{X: 1000, Z: 1000}}},
	}
	rank := func(dir string) []SpotScore {
		inst := NewInstance(newTestStore(t, dir, nil),
			WithSink(status.NewSink(filepath.Join(dir, "status.txt"), false)))
		t.Cleanup(func() { _ = inst.Close() })
		return inst.RankBuildSpots(snap, geo.Vec3{})
	}

	stock := t.TempDir()
	assert.Len(t, rank(stock), 1)
	written, err := influence.Load(filepath.Join(stock, influence.FileName))
	require.NoError(t, err, "stock table is written on first start")
	assert.Equal(t, influence.DefaultTable(), written)

	// carriers project nothing, so the spot next to the enemy base is neutral
	custom := t.TempDir()
	require.NoError(t, influence.Write(filepath.Join(custom, influence.FileName),
		influence.Table{unitclass.Kernel: {Max: 100, Radius: 1024}}))
	assert.Len(t, rank(custom), 2)

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, influence.FileName), []byte("{"), 0600))
	assert.Len(t, rank(broken), 1, "unreadable table falls back to defaults")
}

func TestDumpStatus_ReadOnly(t *testing.T) {
	inst, path := newTestInstance(t, nil)

	snap := host.Snapshot{
		Team:  2,
		Frame: 85,
		Map:   host.MapInfo{Width: 256, Height: 256},
		// second spot duplicates the first
		Geos:    []geo.Vec3{{X: 1000, Z: 1000}, {X: 1010, Z: 1000}, {X: 1500, Z: 300}},
		Friends: []host.Unit{{ID: 1209, Name: "kernel", Pos: geo.Vec3{X: 256, Y: 101, Z: 256}}},
		Foes:    []host.Unit{{ID: 1510, Name: "hole", Pos: geo.Vec3{X: 1792, Y: 100, Z: 1792}}},
	}
	before := host.Snapshot{
		Team:    snap.Team,
		Frame:   snap.Frame,
		Map:     snap.Map,
		Geos:    append([]geo.Vec3(nil), snap.Geos...),
		Friends: append([]host.Unit(nil), snap.Friends...),
		Foes:    append([]host.Unit(nil), snap.Foes...),
	}

	inst.DumpStatus(snap)

	if diff := cmp.Diff(before, snap); diff != "" {
		t.Errorf("snapshot modified (-before +after):\n%s", diff)
	}

	rep, err := status.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 85, rep.Frame)
	assert.Len(t, rep.Geos, 2)
	assert.Equal(t, snap.Friends, rep.Friends)
	assert.Equal(t, snap.Foes, rep.Foes)
	require.Len(t, rep.Influence, 32)
	assert.Positive(t, rep.Influence[4][4], "friendly kernel territory")
	assert.Negative(t, rep.Influence[28][28], "enemy base territory")
}

func TestRankBuildSpots(t *testing.T) {
	inst, _ := newTestInstance(t, nil)

	friendly := geo.Vec3{X: 200, Z: 200}
	hostile := geo.Vec3{X: 1000, Z: 1000}
	snap := host.Snapshot{
		Map:     host.MapInfo{Width: 256, Height: 256},
		Geos:    []geo.Vec3{hostile, friendly},
		Friends: []host.Unit{{ID: 1, Name: "kernel", Pos: geo.Vec3{X: 100, Z: 100}}},
		Foes:    []host.Unit{{ID: 2, Name: "carrier", Pos: geo.Vec3{X: 1000, Z: 1000}}},
	}

	got := inst.RankBuildSpots(snap, geo.Vec3{})
	require.Len(t, got, 1, "spot in enemy territory is skipped")
	assert.Equal(t, friendly, got[0].Pos)
	assert.Positive(t, got[0].Influence)

	want := inst.Config().Calculator().BuildSpotPriority(got[0].Distance, float64(got[0].Influence), 256, 256)
	assert.Equal(t, want, got[0].Priority)
}

func TestRankBuildSpots_OrderedByPriority(t *testing.T) {
	inst, _ := newTestInstance(t, map[string]any{"expansionInfluenceLimit": -1000})

	snap := host.Snapshot{
		Map:     host.MapInfo{Width: 256, Height: 256},
		Geos:    []geo.Vec3{{X: 1800, Z: 1800}, {X: 300, Z: 300}, {X: 900, Z: 900}},
		Friends: []host.Unit{{ID: 1, Name: "kernel", Pos: geo.Vec3{X: 300, Z: 300}}},
	}
	got := inst.RankBuildSpots(snap, geo.Vec3{X: 300, Z: 300})
	require.Len(t, got, 3)
	for k := 1; k < len(got); k++ {
		assert.GreaterOrEqual(t, got[k-1].Priority, got[k].Priority)
	}
	assert.Equal(t, geo.Vec3{X: 300, Z: 300}, got[0].Pos)
}

func TestConstructorPlanning(t *testing.T) {
	geos := make([]geo.Vec3, 9)
	for k := range geos {
		geos[k] = geo.Vec3{X: float64(k) * 500, Z: 100}
	}
	snap := host.Snapshot{Map: host.MapInfo{Width: 128, Height: 128}, Geos: geos}

	inst, _ := newTestInstance(t, nil)
	assert.Equal(t, 2, inst.WantedConstructors(snap))
	assert.Equal(t, 1, inst.ConstructorsToOrder(snap, 1, 0))
	assert.Equal(t, 0, inst.ConstructorsToOrder(snap, 1, 5))

	// duplicates do not count as extra spots
	snap.Geos = append(snap.Geos, geo.Vec3{X: 10, Z: 110})
	assert.Equal(t, 2, inst.WantedConstructors(snap))
}

func TestPlanConstructors(t *testing.T) {
	geos := make([]geo.Vec3, 9)
	for k := range geos {
		geos[k] = geo.Vec3{X: float64(k) * 500, Z: 100}
	}
	hole := host.Unit{ID: 7, Name: "hole", Pos: geo.Vec3{X: 300, Z: 300}}
	snap := host.Snapshot{
		Map:     host.MapInfo{Width: 128, Height: 128},
		Geos:    geos,
		Friends: []host.Unit{{ID: 3, Name: "bug"}, {ID: 4, Name: "mystery"}, hole},
	}
	inst, _ := newTestInstance(t, nil)

	order, ok := inst.PlanConstructors(snap, 0, 0)
	require.True(t, ok)
	assert.Equal(t, ConstructorOrder{Factory: hole, Builder: unitclass.Trojan, Expansion: unitclass.Window, Count: 2}, order)

	_, ok = inst.PlanConstructors(snap, 1, 1)
	assert.False(t, ok, "nothing missing")

	snap.Friends = snap.Friends[:2]
	_, ok = inst.PlanConstructors(snap, 0, 0)
	assert.False(t, ok, "no home base")
}

func TestBuilderRetreatDeadline(t *testing.T) {
	inst, _ := newTestInstance(t, nil)
	assert.Equal(t, 100+10*host.DefaultGameSpeed, inst.BuilderRetreatDeadline(100))
}

func TestInstance_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	inst := NewInstance(newTestStore(t, t.TempDir(), nil), WithSink(status.NewSink(filepath.Join(t.TempDir(), "s.txt"), false)))
	for frame := 0; frame < 20; frame++ {
		inst.Update(host.Snapshot{Frame: frame, Map: host.MapInfo{Width: 32, Height: 32}})
	}
	require.NoError(t, inst.Close())
}
