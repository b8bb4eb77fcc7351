package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	benchCount     int
	benchValueSize int
)

func init() {
	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Insert a batch of random keys and report throughput",
		Long: `bench inserts --count random UUID keys with --value-size random
bytes each, stopping early (and reporting how many it completed) if the
arena runs out of space. It is meant for sizing a buffer, not as a durable
load generator.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(args[0])
		},
	}
	cmd.Flags().IntVar(&benchCount, "count", 10000, "Number of random keys to insert")
	cmd.Flags().IntVar(&benchValueSize, "value-size", 32, "Size in bytes of each random value")
	rootCmd.AddCommand(cmd)
}

func runBench(path string) error {
	tbl, buf, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	value := make([]byte, benchValueSize)
	if _, err := rand.Read(value); err != nil {
		return fmt.Errorf("generating random value: %w", err)
	}
	start := time.Now()

	var inserted int
	for i := 0; i < benchCount; i++ {
		key := uuid.New()
		if err := tbl.Insert(key[:], value); err != nil {
			logger.Warn("bench stopped early", "inserted", inserted, "error", err)
			break
		}
		inserted++
	}

	elapsed := time.Since(start)

	if err := saveTable(path, buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	bytesWritten := uint64(inserted) * uint64(16+benchValueSize)
	fmt.Printf("inserted %d/%d keys in %s (%s/s, %.0f ops/s)\n",
		inserted, benchCount, elapsed,
		humanize.Bytes(uint64(float64(bytesWritten)/elapsed.Seconds())),
		float64(inserted)/elapsed.Seconds(),
	)

	return nil
}
