// cmd/aptdump/main.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// aptdump scans configured X-Plane scenery roots, parses every airport
// found (through the on-disk cache), and reports summary statistics; with
// -airport and -dump it prints one airport's complete parsed record.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/viper"

	"github.com/lyestarzalt/x-dispatch-sub002/apt"
	"github.com/lyestarzalt/x-dispatch-sub002/log"
	"github.com/lyestarzalt/x-dispatch-sub002/scenery"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	icao := flag.String("airport", "", "report on a single airport by ICAO")
	dump := flag.Bool("dump", false, "print the full parsed record (with -airport)")
	logLevel := flag.String("loglevel", "", "override the configured log level")
	flag.Parse()

	viper.SetDefault("log.level", "info")
	viper.SetConfigName("aptdump")
	viper.SetConfigType("yaml")
	if *configPath != "" {
		viper.SetConfigFile(*configPath)
	} else {
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "XDispatch"))
		}
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	level := viper.GetString("log.level")
	if *logLevel != "" {
		level = *logLevel
	}
	lg := log.New(level, "")

	roots := viper.GetStringSlice("scenery.roots")
	if len(roots) == 0 {
		fmt.Fprintf(os.Stderr, "no scenery.roots configured\n")
		os.Exit(1)
	}

	cachePath := viper.GetString("cache.path")
	if cachePath == "" {
		cachePath = filepath.Join(lg.LogDir, "airports.db")
	}
	cache, err := scenery.OpenCache(cachePath, lg)
	if err != nil {
		lg.Errorf("%s: %v", cachePath, err)
		os.Exit(1)
	}
	defer cache.Close()

	airports := parseAll(roots, cache, lg)

	if *icao != "" {
		ap, ok := airports[*icao]
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: airport not found in scenery\n", *icao)
			os.Exit(1)
		}
		if *dump {
			spew.Fdump(os.Stdout, ap)
		} else {
			printSummary(ap)
		}
		return
	}

	for _, icao := range util.SortedMapKeys(airports) {
		printSummary(airports[icao])
	}
}

func parseAll(roots []string, cache *scenery.Cache, lg *log.Logger) map[string]*apt.Airport {
	files, err := scenery.Scan(roots)
	if err != nil {
		lg.Errorf("scenery scan: %v", err)
		os.Exit(1)
	}
	lg.Infof("found %d apt.dat files under %d roots", len(files), len(roots))

	airports := make(map[string]*apt.Airport)
	for _, f := range files {
		text, err := f.ReadFile()
		if err != nil {
			lg.Errorf("%s: %v", f.Path, err)
			continue
		}
		for _, chunk := range scenery.SplitAirports(text) {
			var e util.ErrorLogger
			e.Push(chunk.ICAO)
			ap, err := cache.Get(chunk, f.ModTime, &e)
			if err != nil {
				lg.Errorf("%s: %v", chunk.ICAO, err)
				continue
			}
			if e.HaveErrors() {
				e.PrintErrors(lg)
			}
			// Later scenery packs override earlier ones.
			airports[ap.ICAO] = ap
		}
	}
	return airports
}

func printSummary(ap *apt.Airport) {
	runways := util.MapSlice(ap.Runways, func(r apt.Runway) string {
		return r.Ends[0].Name + "/" + r.Ends[1].Name
	})
	fmt.Printf("%-5s %-40s elev %5.0f  runways [%s]  %d taxiways, %d linear features, %d signs\n",
		ap.ICAO, ap.Name, ap.Elevation, strings.Join(runways, " "),
		len(ap.Taxiways), len(ap.LinearFeatures), len(ap.Signs))
}
