// scenery/scenery_test.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyestarzalt/x-dispatch-sub002/apt"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

func TestScan(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "Some Pack", "Earth nav data")
	require.NoError(t, os.MkdirAll(good, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(good, "apt.dat"), []byte("I\n99\n"), 0o644))

	// An apt.dat outside an "Earth nav data" folder doesn't count.
	other := filepath.Join(root, "Other Pack", "docs")
	require.NoError(t, os.MkdirAll(other, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(other, "apt.dat"), []byte("I\n99\n"), 0o644))

	files, err := Scan([]string{root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(good, "apt.dat"), files[0].Path)
	assert.False(t, files[0].ModTime.IsZero())

	text, err := files[0].ReadFile()
	require.NoError(t, err)
	assert.Equal(t, "I\n99\n", text)
}

func TestSplitAirports(t *testing.T) {
	text := `I
1100 Generated by WorldEditor

1 432 1 0 KBFI Boeing Field
100 29.87 1 0 0.25 1 2 1 14R 47.53 -122.31 0 0 3 2 1 2 32L 47.52 -122.30 0 0 3 1 0 1
16 0 0 0 W39 Lake Union SPB
19 47.62 -122.33 1 windsock
99
trailing garbage`

	chunks := SplitAirports(text)
	require.Len(t, chunks, 2)

	assert.Equal(t, "KBFI", chunks[0].ICAO)
	assert.Contains(t, chunks[0].Text, "1 432 1 0 KBFI Boeing Field")
	assert.Contains(t, chunks[0].Text, "14R")
	assert.NotContains(t, chunks[0].Text, "Lake Union")

	assert.Equal(t, "W39", chunks[1].ICAO)
	assert.Contains(t, chunks[1].Text, "windsock")
	assert.NotContains(t, chunks[1].Text, "99")
	assert.NotContains(t, chunks[1].Text, "trailing garbage")
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := OpenCache(filepath.Join(t.TempDir(), "airports.db"), nil)
	require.NoError(t, err)
	defer c.Close()

	chunk := Chunk{ICAO: "KBFI", Text: "1 432 1 0 KBFI Boeing Field\n1302 city Seattle\n"}
	mod := time.Unix(1700000000, 0)

	var e util.ErrorLogger
	ap, err := c.Get(chunk, mod, &e)
	require.NoError(t, err)
	require.False(t, e.HaveErrors(), e.String())
	assert.Equal(t, "Boeing Field", ap.Name)

	// Same mod time: the cached record is served, so a changed chunk text
	// is not reparsed.
	changed := Chunk{ICAO: "KBFI", Text: "1 432 1 0 KBFI Renamed Field\n"}
	ap, err = c.Get(changed, mod, &e)
	require.NoError(t, err)
	assert.Equal(t, "Boeing Field", ap.Name)
	assert.Equal(t, "Seattle", ap.Metadata.Value("city"))

	// A newer mod time invalidates the record.
	ap, err = c.Get(changed, mod.Add(time.Hour), &e)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Field", ap.Name)
}

func TestCacheEncoding(t *testing.T) {
	c, err := OpenCache(filepath.Join(t.TempDir(), "airports.db"), nil)
	require.NoError(t, err)
	defer c.Close()

	var e util.ErrorLogger
	src := apt.Parse("1 432 1 0 KBFI Boeing Field\n1302 city Seattle\n19 47.62 -122.33 1 sock\n", nil, &e)
	require.False(t, e.HaveErrors(), e.String())

	blob, err := c.encode(src)
	require.NoError(t, err)
	got, err := c.decode(blob)
	require.NoError(t, err)

	assert.Equal(t, src.ICAO, got.ICAO)
	assert.Equal(t, src.Name, got.Name)
	assert.Equal(t, src.Windsocks, got.Windsocks)
	assert.Equal(t, "Seattle", got.Metadata.Value("city"))
}

func TestSignCache(t *testing.T) {
	c, err := NewSignCache(16)
	require.NoError(t, err)

	a := apt.Sign{Size: 3, Text: "{@L}B6{@Y}C2{^r}"}
	b := apt.Sign{Size: 3, Text: "{@L}B6{@Y}C2{^r}"}

	da := c.Decode(a)
	db := c.Decode(b)
	assert.Equal(t, da.FrontKey, db.FrontKey)
	assert.Empty(t, da.BackKey)
	assert.Equal(t, 1, c.Len())
	require.Len(t, da.Front, 2)
	assert.Equal(t, apt.SignSegment{Color: apt.SignLocation, Text: "B6"}, da.Front[0])
	assert.Equal(t, apt.SignSegment{Color: apt.SignDirection, Text: "C2→"}, da.Front[1])

	// The same text at another size renders differently and gets its own
	// entry.
	dc := c.Decode(apt.Sign{Size: 5, Text: "{@L}B6{@Y}C2{^r}"})
	assert.NotEqual(t, da.FrontKey, dc.FrontKey)
	assert.Equal(t, 2, c.Len())
}
