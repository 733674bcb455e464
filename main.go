package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/shinyvision/kls/internal/config"
	"github.com/shinyvision/kls/internal/server"
)

// main parses the three CLI flags spec.md §6 names and starts the server
// over stdio, following the teacher's minimal main (no subcommand
// framework — a single binary with a flat flag set doesn't warrant pulling
// in cobra/pflag the way cue's multi-command cue CLI does).
func main() {
	logFile := flag.String("log-file", "", "path to write logs to (stderr if empty)")
	startNewLogFile := flag.Bool("start-new-log-file", false, "truncate --log-file instead of appending")
	logTimestamps := flag.Bool("log-timestamps", true, "recorded in the config; does not change log output")
	flag.Parse()

	if *logFile != "" && *startNewLogFile {
		if err := os.Truncate(*logFile, 0); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "kls: could not truncate %s: %v\n", *logFile, err)
			os.Exit(1)
		}
	}

	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(1, logPath)

	cfg := config.NewConfig()
	cfg.LogFile = *logFile
	cfg.StartNewLogFile = *startNewLogFile
	cfg.LogTimestamps = *logTimestamps

	s := server.NewServer(cfg)
	s.Run()
}
