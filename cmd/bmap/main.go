// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/blinklabs-io/bmap"
	"github.com/blinklabs-io/bmap/bitcom"
	"github.com/blinklabs-io/bmap/hashing"
	"github.com/blinklabs-io/bmap/pipeline"
	"github.com/spf13/pflag"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

type globalFlags struct {
	flagset  *pflag.FlagSet
	format   string
	registry string
	hash     string
	workers  int
	pretty   bool
	debug    bool
}

func newGlobalFlags(name string) *globalFlags {
	f := &globalFlags{
		flagset: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}
	f.flagset.StringVarP(
		&f.format,
		"format",
		"f",
		formatJSON,
		"output format (json or cbor)",
	)
	f.flagset.StringVar(
		&f.registry,
		"registry",
		"",
		"YAML file with additional protocol definitions",
	)
	f.flagset.StringVar(
		&f.hash,
		"hash",
		"sha256",
		"hash function for METANET node IDs (sha256, blake2b256 or blake3)",
	)
	f.flagset.IntVarP(
		&f.workers,
		"workers",
		"w",
		runtime.NumCPU(),
		"number of transactions decoded in parallel",
	)
	f.flagset.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	f.flagset.Usage = func() {
		fmt.Fprintf(
			f.flagset.Output(),
			"Usage: %s [flags] [file...]\n\nDecodes transaction JSON from the specified files (or stdin) and writes one record per transaction.\n\n",
			name,
		)
		f.flagset.PrintDefaults()
	}
	return f
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	f := newGlobalFlags(args[0])
	f.flagset.SetOutput(stderr)
	if err := f.flagset.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "failed to parse command args: %s\n", err)
		return 1
	}
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	)
	decoder, err := newDecoder(f, logger)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	out, err := newRecordWriter(stdout, f.format, f.pretty)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	ctx := context.Background()
	p := pipeline.New(decoder, pipeline.WithWorkers(f.workers))
	if err := p.Start(ctx); err != nil {
		logger.Error(err.Error())
		return 1
	}
	written := writeResults(p.Results(), out, logger)
	failed := false
	inputs := f.flagset.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, input := range inputs {
		txns, err := readTransactions(input, stdin)
		if err != nil {
			logger.Error(
				"failed to read transactions",
				"input", input,
				"error", err,
			)
			failed = true
			continue
		}
		for _, txn := range txns {
			if err := p.Submit(ctx, txn); err != nil {
				logger.Error(
					"failed to submit transaction",
					"txid", txn.ID,
					"error", err,
				)
				failed = true
			}
		}
	}
	p.Stop()
	if !<-written {
		failed = true
	}
	stats := p.Stats()
	logger.Debug(
		"finished",
		"submitted", stats.Submitted,
		"decoded", stats.Decoded,
		"failed", stats.Failed,
		"decode_time", stats.DecodeTime,
	)
	if failed {
		return 1
	}
	return 0
}

func newDecoder(f *globalFlags, logger *slog.Logger) (*bmap.Decoder, error) {
	hasher, err := hashing.ByName(f.hash)
	if err != nil {
		return nil, err
	}
	registry := bitcom.DefaultRegistry()
	if f.registry != "" {
		protocols, err := bitcom.LoadConfigFile(f.registry)
		if err != nil {
			return nil, err
		}
		registry, err = registry.Extend(protocols...)
		if err != nil {
			return nil, err
		}
		logger.Debug(
			"loaded registry extensions",
			"path", f.registry,
			"protocols", len(protocols),
		)
	}
	return bmap.New(
		bmap.WithLogger(logger),
		bmap.WithRegistry(registry),
		bmap.WithHasher(hasher),
	), nil
}

// writeResults writes records in submission order until the results channel
// is closed. The returned channel reports whether every item succeeded.
func writeResults(
	results <-chan *pipeline.Item,
	out recordWriter,
	logger *slog.Logger,
) <-chan bool {
	ret := make(chan bool, 1)
	go func() {
		ok := true
		for item := range results {
			if err := item.Err(); err != nil {
				logger.Error(
					"failed to decode transaction",
					"txid", item.Transaction().ID,
					"error", err,
				)
				ok = false
				continue
			}
			if err := out.Write(item.Record()); err != nil {
				logger.Error(
					"failed to write record",
					"txid", item.Transaction().ID,
					"error", err,
				)
				ok = false
			}
		}
		ret <- ok
	}()
	return ret
}
