// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package status

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ManuGH/kpai/internal/geo"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Frame: 85,
		Map:   host.MapInfo{Width: 256, Height: 256},
		Geos:  []geo.Vec3{{X: 1000, Z: 1000}, {X: 2000.5, Z: 2000}},
		Friends: []host.Unit{
			{ID: 1209, Name: "kernel", Pos: geo.Vec3{X: 256, Y: 101, Z: 256}},
		},
		Foes: []host.Unit{
			{ID: 1510, Name: "kernel", Pos: geo.Vec3{X: 1792, Y: 100, Z: 1792}},
		},
		Influence: [][]int{{0, 5, -3}, {100, 0, 0}},
	}
}

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport()))

	want := "frame 85\n" +
		"map 256 256\n" +
		"geovents\n" +
		"\t1000 1000\n" +
		"\t2000.5 2000\n" +
		"units friendly\n" +
		"\tkernel 1209 256 101 256\n" +
		"units enemy\n" +
		"\tkernel 1510 1792 100 1792\n" +
		"influence map\n" +
		"\t3 2\n" +
		"\t0 5 -3\n" +
		"\t100 0 0\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_EmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Report{Frame: 5, Map: host.MapInfo{Width: 8, Height: 8}}))
	assert.Equal(t, "frame 5\nmap 8 8\ngeovents\nunits friendly\nunits enemy\ninfluence map\n", buf.String())
}

func TestParse_RoundTrip(t *testing.T) {
	want := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))

	got, err := Parse(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "bad frame", in: "frame x\n"},
		{name: "unknown header", in: "frame 1\nweather sunny\n"},
		{name: "data outside section", in: "frame 1\n\t1 2\n"},
		{name: "short unit", in: "units friendly\n\tkernel 1 2\n"},
		{name: "bad geo", in: "geovents\n\tx 2\n"},
		{name: "ragged influence row", in: "influence map\n\t2 1\n\t1 2 3\n"},
		{name: "missing influence rows", in: "influence map\n\t2 2\n\t1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestSink_PlainWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "status.txt")
	s := NewSink(path, false)
	defer s.Close()

	assert.False(t, s.Compressed())
	assert.Equal(t, path, s.Path())
	require.NoError(t, s.Write(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "frame 85\n"))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 85, got.Frame)
}

func TestSink_CompressedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.txt")
	s := NewSink(path, true)
	require.True(t, s.Compressed())
	assert.Equal(t, path+CompressedExt, s.Path())

	require.NoError(t, s.Write(sampleReport()))
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path + CompressedExt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, zstdMagic))

	got, err := ReadFile(path + CompressedExt)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleReport(), got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestSink_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.txt")
	s := NewSink(path, true)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.Compressed())
	assert.Equal(t, path+CompressedExt, s.Path())
	assert.ErrorIs(t, s.Write(sampleReport()), ErrClosed)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+CompressedExt)
}

func TestFromSnapshot(t *testing.T) {
	snap := host.Snapshot{
		Team:  1,
		Frame: 10,
		Map:   host.MapInfo{Width: 64, Height: 32},
		Geos:  []geo.Vec3{{X: 1, Z: 2}},
	}
	r := FromSnapshot(snap, nil)
	assert.Equal(t, 10, r.Frame)
	assert.Equal(t, snap.Map, r.Map)
	assert.Equal(t, snap.Geos, r.Geos)
	assert.Nil(t, r.Influence)
}
