// Command vanigo searches for a vanity address in parallel and prints every
// improvement until the desired prefix is found.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/vanigo"
	"github.com/hupe1980/vanigo/engine"
	"github.com/hupe1980/vanigo/journal"
	"github.com/hupe1980/vanigo/vanity"
)

type searchOptions struct {
	Prefix        string
	CaseSensitive bool
	Workers       int
	Capacity      int
	JournalDir    string
	RatePerSec    float64
	MaxActive     int64
	Monitor       time.Duration
	Salt          string
	Network       uint8
	LogJSON       bool
	Verbose       bool
}

func newRootCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "vanigo",
		Short: "Search for a vanity address",
		Long: `Search for an address carrying the desired prefix.

Workers derive candidates in parallel and every improvement over the best
known candidate is printed as "address -> hex seed". The search stops when
an address starts with the full prefix, or on Ctrl-C with the best found
so far.

Example:
  vanigo --prefix ab --workers 8
  vanigo --prefix AB --case-sensitive --journal ./run --monitor 1s`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "desired prefix of the address (required)")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "match the prefix case-exactly")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "number of workers (default: all CPUs)")
	cmd.Flags().IntVar(&opts.Capacity, "channel-capacity", 0, "improvement channel capacity")
	cmd.Flags().StringVar(&opts.JournalDir, "journal", "", "directory to journal improvements into")
	cmd.Flags().Float64Var(&opts.RatePerSec, "rate-limit", 0, "max candidates per second (0 = unlimited)")
	cmd.Flags().Int64Var(&opts.MaxActive, "max-active", 0, "max workers generating at once (0 = all)")
	cmd.Flags().DurationVar(&opts.Monitor, "monitor", 0, "throughput reporting interval (0 = off)")
	cmd.Flags().StringVar(&opts.Salt, "salt", "", "hex salt fixing the explored key region")
	cmd.Flags().Uint8Var(&opts.Network, "network", vanity.NetworkSubstrate, "SS58 network identifier")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "log in JSON format")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("prefix")

	return cmd
}

func runSearch(ctx context.Context, opts *searchOptions) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}

	var logger *vanigo.Logger
	if opts.LogJSON {
		logger = vanigo.NewJSONLogger(logLevel)
	} else {
		logger = vanigo.NewTextLogger(logLevel)
	}

	builder := vanigo.Vanity(opts.Prefix).
		Network(opts.Network).
		Workers(opts.Workers).
		ChannelCapacity(opts.Capacity).
		WithLogger(logger).
		Throttle(engine.ThrottleConfig{
			MaxActiveWorkers: opts.MaxActive,
			CandidatesPerSec: opts.RatePerSec,
		}).
		OnImprovement(func(c vanity.Candidate) {
			fmt.Println(c)
		})

	if opts.CaseSensitive {
		builder = builder.CaseSensitive()
	}
	if opts.Monitor > 0 {
		builder = builder.Monitor(opts.Monitor)
	}
	if opts.Salt != "" {
		salt, err := hex.DecodeString(opts.Salt)
		if err != nil {
			return fmt.Errorf("decode salt: %w", err)
		}
		builder = builder.Salt(salt)
	}
	if opts.JournalDir != "" {
		store, err := journal.NewLocalStore(opts.JournalDir)
		if err != nil {
			return err
		}
		j, err := journal.New[vanity.Candidate](store, func(o *journal.Options) {
			o.Compressor = journal.Zstd{}
		})
		if err != nil {
			return err
		}
		builder = builder.Journal(j)
	}

	v, err := builder.Build()
	if err != nil {
		return err
	}

	found, err := v.Run(ctx)
	if err != nil {
		// Ctrl-C still reports the best found so far.
		if errors.Is(err, context.Canceled) {
			fmt.Printf("interrupted; best so far: %s\n", found)
			return nil
		}
		return err
	}

	fmt.Printf("found: %s\n", found)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
