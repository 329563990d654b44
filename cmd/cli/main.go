package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/banksystem/infra/initializer"
	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/amirasaad/banksystem/pkg/report"
	"github.com/amirasaad/banksystem/pkg/statement"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/term"
)

const usage = `Usage: cli [command]
Commands:
  demo       run the sample scenario and print the bank report (default)
  statement  run the scenario and export every account log as canonical JSON lines
  metrics    run the scenario and print the collected metrics`

var errUsage = errors.New("unknown command")

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], cfg, os.Stdout, os.Stderr, term.IsTerminal(int(os.Stdout.Fd()))); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, cfg *config.App, stdout, stderr io.Writer, isTTY bool, opts ...initializer.Option) error {
	cmd := "demo"
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "demo", "statement", "metrics":
	case "help", "-h", "--help":
		_, _ = fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: %q", errUsage, cmd)
	}

	deps, err := initializer.InitializeDependencies(cfg, stderr, opts...)
	if err != nil {
		return err
	}

	printer := report.New(stdout, useColor(cfg.Report, isTTY))
	quiet := report.New(io.Discard, false)

	switch cmd {
	case "statement":
		s, err := runScenario(deps.Bank, quiet)
		if err != nil {
			return err
		}
		return statement.Write(stdout, s.accounts()...)
	case "metrics":
		if _, err := runScenario(deps.Bank, quiet); err != nil {
			return err
		}
		families, err := deps.Registry.Gather()
		if err != nil {
			return err
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(stdout, mf); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := runScenario(deps.Bank, printer)
		return err
	}
}

func useColor(cfg *config.Report, isTTY bool) bool {
	if cfg == nil {
		return isTTY
	}
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTTY
	}
}
