package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/nukata/little-gc-scheme-in-go/scheme"
)

// readEvalPrintLoop repeats read-eval-print on the terminal until
// End-Of-File or :quit.
func readEvalPrintLoop(ip *scheme.Interpreter, cfg scheme.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryFile
	if histPath != "" && !filepath.IsAbs(histPath) {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, histPath)
		}
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := readExpression(ln, cfg.Prompt, cfg.ContinuePrompt)
		if !ok {
			fmt.Fprintln(stdout, "Goodby")
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if quit := evalPrint(ip, src, stdout, stderr); quit {
			return 0
		}
	}
}

// readExpression reads lines until they hold whole expressions.
func readExpression(ln *liner.State, prompt1, prompt2 string) (string, bool) {
	var b strings.Builder
	for {
		prompt := prompt1
		if b.Len() > 0 {
			prompt = prompt2
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil { // io.EOF
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if src := b.String(); scheme.Complete(src) {
			return src, true
		}
	}
}

// readEvalPrint evaluates lines from a non-terminal input.
func readEvalPrint(ip *scheme.Interpreter, stdin io.Reader, stdout, stderr io.Writer) int {
	lines := bufio.NewScanner(stdin)
	var b strings.Builder
	for lines.Scan() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lines.Text())
		src := b.String()
		if !scheme.Complete(src) {
			continue
		}
		b.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}
		if quit := evalPrint(ip, src, stdout, stderr); quit {
			return 0
		}
	}
	if err := lines.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if src := b.String(); strings.TrimSpace(src) != "" {
		// An expression left open at EOF.
		if _, err := ip.Run(src); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

// evalPrint runs src, or a REPL command, and prints the outcome.
// It reports whether the session should end.
func evalPrint(ip *scheme.Interpreter, src string, stdout, stderr io.Writer) bool {
	switch strings.TrimSpace(src) {
	case ":quit":
		return true
	case ":gc":
		st := ip.Stats()
		fmt.Fprintf(stdout, "live %d, freed %d, cycles %d\n", st.Live, st.Freed, st.Cycles)
		return false
	}
	result, err := ip.Run(src)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}
	fmt.Fprintln(stdout, result)
	return false
}
