// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package status writes and reads the plain-text status dump consumed by
// the visualiser.
//
// Example:
//
//	frame 85
//	map 256 256
//	geovents
//		1000 1000
//	units friendly
//		kernel 1209 256 101 256
//	units enemy
//		kernel 1510 1792 100 1792
//	influence map
//		32 32
//		0 0 5 ...
package status

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ManuGH/kpai/internal/geo"
	"github.com/ManuGH/kpai/internal/host"
)

// ErrMalformed is returned by Parse for input that is not a status dump.
var ErrMalformed = errors.New("malformed status dump")

// Report is one status dump.
type Report struct {
	Frame     int
	Map       host.MapInfo
	Geos      []geo.Vec3 // only X and Z are dumped
	Friends   []host.Unit
	Foes      []host.Unit
	Influence [][]int // rows of the influence grid, may be nil
}

// FromSnapshot builds a report from a host snapshot.
func FromSnapshot(s host.Snapshot, influence [][]int) Report {
	return Report{
		Frame:     s.Frame,
		Map:       s.Map,
		Geos:      s.Geos,
		Friends:   s.Friends,
		Foes:      s.Foes,
		Influence: influence,
	}
}

const (
	headerGeo       = "geovents"
	headerFriends   = "units friendly"
	headerFoes      = "units enemy"
	headerInfluence = "influence map"
)

// Write renders r in the status dump format.
func Write(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "frame %d\n", r.Frame)
	fmt.Fprintf(bw, "map %d %d\n", r.Map.Width, r.Map.Height)

	bw.WriteString(headerGeo + "\n")
	for _, g := range r.Geos {
		fmt.Fprintf(bw, "\t%s %s\n", ftoa(g.X), ftoa(g.Z))
	}

	writeUnits(bw, headerFriends, r.Friends)
	writeUnits(bw, headerFoes, r.Foes)

	bw.WriteString(headerInfluence + "\n")
	if len(r.Influence) > 0 {
		fmt.Fprintf(bw, "\t%d %d\n", len(r.Influence[0]), len(r.Influence))
		for _, row := range r.Influence {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = strconv.Itoa(v)
			}
			fmt.Fprintf(bw, "\t%s\n", strings.Join(cells, " "))
		}
	}

	return bw.Flush()
}

func writeUnits(bw *bufio.Writer, header string, units []host.Unit) {
	bw.WriteString(header + "\n")
	for _, u := range units {
		fmt.Fprintf(bw, "\t%s %d %s %s %s\n", u.Name, u.ID, ftoa(u.Pos.X), ftoa(u.Pos.Y), ftoa(u.Pos.Z))
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type section int

const (
	sectionNone section = iota
	sectionGeo
	sectionFriends
	sectionFoes
	sectionInfluenceSize
	sectionInfluenceRows
)

// Parse reads a status dump. Blank lines are ignored.
func Parse(r io.Reader) (Report, error) {
	var (
		rep  Report
		sec  section
		size [2]int
		line int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		if !strings.HasPrefix(text, "\t") {
			var err error
			sec, err = parseHeader(&rep, text)
			if err != nil {
				return Report{}, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		fields := strings.Fields(text)
		var err error
		switch sec {
		case sectionGeo:
			var g geo.Vec3
			g, err = parseGeo(fields)
			rep.Geos = append(rep.Geos, g)
		case sectionFriends:
			var u host.Unit
			u, err = parseUnit(fields)
			rep.Friends = append(rep.Friends, u)
		case sectionFoes:
			var u host.Unit
			u, err = parseUnit(fields)
			rep.Foes = append(rep.Foes, u)
		case sectionInfluenceSize:
			size, err = parseInts2(fields)
			rep.Influence = make([][]int, 0, size[1])
			sec = sectionInfluenceRows
		case sectionInfluenceRows:
			var row []int
			row, err = parseRow(fields, size[0])
			rep.Influence = append(rep.Influence, row)
		default:
			err = fmt.Errorf("%w: data line outside a section", ErrMalformed)
		}
		if err != nil {
			return Report{}, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Report{}, err
	}
	if sec == sectionInfluenceRows && len(rep.Influence) != size[1] {
		return Report{}, fmt.Errorf("%w: influence map has %d rows, want %d", ErrMalformed, len(rep.Influence), size[1])
	}
	return rep, nil
}

func parseHeader(rep *Report, text string) (section, error) {
	switch {
	case strings.HasPrefix(text, "frame "):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "frame ")))
		if err != nil {
			return sectionNone, fmt.Errorf("%w: bad frame: %v", ErrMalformed, err)
		}
		rep.Frame = n
		return sectionNone, nil
	case strings.HasPrefix(text, "map "):
		wh, err := parseInts2(strings.Fields(strings.TrimPrefix(text, "map ")))
		if err != nil {
			return sectionNone, err
		}
		rep.Map = host.MapInfo{Width: wh[0], Height: wh[1]}
		return sectionNone, nil
	case text == headerGeo:
		return sectionGeo, nil
	case text == headerFriends:
		return sectionFriends, nil
	case text == headerFoes:
		return sectionFoes, nil
	case text == headerInfluence:
		return sectionInfluenceSize, nil
	}
	return sectionNone, fmt.Errorf("%w: unexpected line %q", ErrMalformed, text)
}

func parseGeo(fields []string) (geo.Vec3, error) {
	if len(fields) != 2 {
		return geo.Vec3{}, fmt.Errorf("%w: geovent needs 2 fields, got %d", ErrMalformed, len(fields))
	}
	x, errX := strconv.ParseFloat(fields[0], 64)
	z, errZ := strconv.ParseFloat(fields[1], 64)
	if err := errors.Join(errX, errZ); err != nil {
		return geo.Vec3{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return geo.Vec3{X: x, Z: z}, nil
}

func parseUnit(fields []string) (host.Unit, error) {
	if len(fields) != 5 {
		return host.Unit{}, fmt.Errorf("%w: unit needs 5 fields, got %d", ErrMalformed, len(fields))
	}
	id, errID := strconv.Atoi(fields[1])
	x, errX := strconv.ParseFloat(fields[2], 64)
	y, errY := strconv.ParseFloat(fields[3], 64)
	z, errZ := strconv.ParseFloat(fields[4], 64)
	if err := errors.Join(errID, errX, errY, errZ); err != nil {
		return host.Unit{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return host.Unit{ID: id, Name: fields[0], Pos: geo.Vec3{X: x, Y: y, Z: z}}, nil
}

func parseInts2(fields []string) ([2]int, error) {
	if len(fields) != 2 {
		return [2]int{}, fmt.Errorf("%w: want 2 integers, got %d fields", ErrMalformed, len(fields))
	}
	a, errA := strconv.Atoi(fields[0])
	b, errB := strconv.Atoi(fields[1])
	if err := errors.Join(errA, errB); err != nil {
		return [2]int{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if a < 0 || b < 0 {
		return [2]int{}, fmt.Errorf("%w: negative size %d %d", ErrMalformed, a, b)
	}
	return [2]int{a, b}, nil
}

func parseRow(fields []string, width int) ([]int, error) {
	if len(fields) != width {
		return nil, fmt.Errorf("%w: influence row has %d cells, want %d", ErrMalformed, len(fields), width)
	}
	row := make([]int, width)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		row[i] = v
	}
	return row, nil
}
