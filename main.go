// A little Scheme with a mark-and-sweep heap, in Go 1.21
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nukata/little-gc-scheme-in-go/scheme"
)

const usage = `usage: scm [flags] [file [-]]

Without a file, scm reads expressions interactively. With a file, it
runs the file and exits, or enters the interactive loop if "-" follows.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "YAML configuration `file`")
	expr := fs.String("e", "", "evaluate `expr`, print its value and exit")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	maxDepth := fs.Int("max-depth", 0, "maximum nesting of evaluations")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := scheme.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = scheme.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ip, err := scheme.New(scheme.WithConfig(cfg), scheme.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *expr != "" {
		result, err := ip.Run(*expr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, result)
		return 0
	}

	if rest := fs.Args(); len(rest) >= 1 {
		if _, err := ip.Load(rest[0]); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if len(rest) < 2 || rest[1] != "-" {
			return 0
		}
	}
	if stdin != os.Stdin {
		return readEvalPrint(ip, stdin, stdout, stderr)
	}
	return readEvalPrintLoop(ip, cfg, stdout, stderr)
}
