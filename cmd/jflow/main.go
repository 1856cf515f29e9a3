// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jflow incrementally parses JSON from a file or stdin and
// prints the decoded value after each chunk of input, demonstrating
// how the tree grows as text arrives.
package main

import (
	"fmt"
	"io"
	"iter"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/tailscale/hujson"

	"github.com/creachadair/jflow"
)

var cli struct {
	Input   string `help:"Input file (default: read stdin)." short:"i" type:"path"`
	Chunk   int    `help:"Chunk size in bytes." short:"c" default:"512"`
	Partial bool   `help:"Surface partial strings in intermediate values." short:"p"`
	Suffix  string `help:"Append this suffix to partial strings (implies --partial)."`
	Events  bool   `help:"Print structural events after each chunk." short:"e"`
	Relaxed bool   `help:"Accept comments and trailing commas in the input." short:"r"`
	Quiet   bool   `help:"Print only the final value." short:"q"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("jflow"),
		kong.Description("Incrementally parse JSON and print the value as it grows."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run())
}

func run() error {
	data, err := readInput()
	if err != nil {
		return err
	}
	if cli.Relaxed {
		std, err := hujson.Standardize(data)
		if err != nil {
			return fmt.Errorf("standardize input: %w", err)
		}
		data = std
	}
	if cli.Chunk < 1 {
		return fmt.Errorf("invalid chunk size %d", cli.Chunk)
	}

	opts := &jflow.Options{TrackEvents: cli.Events}
	if cli.Suffix != "" {
		opts.Incomplete = jflow.SuffixIncomplete
		opts.Suffix = cli.Suffix
	} else if cli.Partial {
		opts.Incomplete = jflow.KeepIncomplete
	}

	for u, err := range jflow.Parse(chunks(string(data), cli.Chunk), opts) {
		if err != nil {
			return err
		}
		if cli.Quiet && !u.Done {
			continue
		}
		fmt.Println(u.Root.JSON())
		for _, e := range u.Events {
			fmt.Printf("  %s %s\n", e.Kind, e.Path)
		}
	}
	return nil
}

func readInput() ([]byte, error) {
	if cli.Input == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(cli.Input)
}

// chunks cuts s into pieces of about n bytes each, never splitting a
// UTF-8 sequence.
func chunks(s string, n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(s) > 0 {
			end := n
			if end >= len(s) {
				yield(s)
				return
			}
			for end < len(s) && !utf8.RuneStart(s[end]) {
				end++
			}
			if !yield(s[:end]) {
				return
			}
			s = s[end:]
		}
	}
}
