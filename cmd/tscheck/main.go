// Command tscheck runs YAML type scenarios through the checker.
//
// Usage:
//
//	tscheck [-config tsinfer.yaml] [-debug] [-v] scenario.yaml...
//
// Every case is reported as PASS or FAIL. The exit status is 1 when any case
// fails and 64 on a usage error.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"tsinfer/pkg/config"
	"tsinfer/pkg/errors"
	"tsinfer/pkg/typeyaml"
)

func main() {
	configFlag := flag.String("config", "", "Path to tsinfer.yaml (default: search from the current directory)")
	debugFlag := flag.Bool("debug", false, "Log checker decisions to stderr")
	verboseFlag := flag.Bool("v", false, "Print passing cases too")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: tscheck [-config file] [-debug] [-v] scenario.yaml...\n")
		os.Exit(64) // Exit code 64: command line usage error
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tscheck: %v\n", err)
		os.Exit(64)
	}

	var logger *slog.Logger
	if *debugFlag {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	r := &reporter{w: os.Stdout, color: useColor(), verbose: *verboseFlag}
	for _, path := range flag.Args() {
		s, err := typeyaml.LoadScenario(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tscheck: %v\n", err)
			r.failed++
			continue
		}
		r.report(s, s.Run(cfg.Options(logger)))
	}

	errors.Printer.Fprintf(os.Stdout, "%d passed, %d failed\n", r.passed, r.failed)
	if r.failed > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

func useColor() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

type reporter struct {
	w       io.Writer
	color   bool
	verbose bool

	passed, failed int
}

func (r *reporter) report(s *typeyaml.Scenario, results []typeyaml.Result) {
	for _, res := range results {
		if res.Passed {
			r.passed++
			if r.verbose {
				fmt.Fprintf(r.w, "%s %s:%d %s\n", r.paint("PASS", ansiGreen), s.Path, res.Case.Line, res.Case.Name)
			}
			continue
		}
		r.failed++
		fmt.Fprintf(r.w, "%s %s:%d %s\n", r.paint("FAIL", ansiRed), s.Path, res.Case.Line, res.Case.Name)
		fmt.Fprintf(r.w, "    want %s, got %s\n", res.Case.Expect, res.Got)
		if res.Err != nil {
			errors.DisplayErrors(r.w, []error{res.Err})
		}
	}
}

func (r *reporter) paint(s, code string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}
