// scenery/scan.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package scenery locates apt.dat files in X-Plane style scenery folders,
// splits them into per-airport chunks, and caches the parsed records so
// that a scenery set only pays the parsing cost when its files change.
package scenery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AptFile is one apt.dat found during a scenery scan.
type AptFile struct {
	Path    string
	ModTime time.Time
}

// Scan walks the given scenery roots and returns the apt.dat files found
// in their "Earth nav data" folders, which is where X-Plane scenery packs
// keep them. Unreadable directories are skipped rather than aborting the
// scan; an error is returned only if a root itself can't be walked.
func Scan(roots []string) ([]AptFile, error) {
	var files []AptFile
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.EqualFold(d.Name(), "apt.dat") {
				return nil
			}
			if !strings.EqualFold(filepath.Base(filepath.Dir(path)), "Earth nav data") {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			files = append(files, AptFile{Path: path, ModTime: info.ModTime()})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// ReadFile slurps one scanned apt.dat.
func (f AptFile) ReadFile() (string, error) {
	b, err := os.ReadFile(f.Path)
	return string(b), err
}

// Chunk is the raw text of a single airport cut out of a multi-airport
// apt.dat file, from its header row up to (but not including) the next
// header or the 99 end-of-file row.
type Chunk struct {
	ICAO string
	Text string
}

// SplitAirports cuts a whole apt.dat file into per-airport chunks. Header
// rows missing their ICAO token start no chunk, and any text before the
// first header (the byte-order line, version comments) belongs to none.
func SplitAirports(text string) []Chunk {
	var chunks []Chunk
	var cur []string
	icao := ""
	flush := func() {
		if icao != "" {
			chunks = append(chunks, Chunk{ICAO: icao, Text: strings.Join(cur, "\n")})
		}
		cur, icao = nil, ""
	}

	for _, line := range strings.Split(text, "\n") {
		f := strings.Fields(strings.TrimSuffix(line, "\r"))
		if len(f) > 0 {
			switch f[0] {
			case "1", "16", "17":
				if len(f) >= 5 {
					flush()
					icao = f[4]
				}
			case "99":
				flush()
				continue
			}
		}
		if icao != "" {
			cur = append(cur, line)
		}
	}
	flush()

	return chunks
}
