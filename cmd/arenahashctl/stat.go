package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statDistribution bool

func init() {
	cmd := &cobra.Command{
		Use:   "stat <file>",
		Short: "Print occupancy statistics for a table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(args[0])
		},
	}
	cmd.Flags().BoolVar(&statDistribution, "distribution", false, "Include per-bucket chain length distribution")
	rootCmd.AddCommand(cmd)
}

func runStat(path string) error {
	tbl, _, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	s := tbl.Stat(statDistribution)

	fmt.Printf("entries:          %d\n", s.EntryCount)
	fmt.Printf("buckets:          %d (%d occupied)\n", s.BucketCount, s.BucketsOccupied)
	fmt.Printf("arena used:       %s / %s\n", humanize.Bytes(s.BytesUsed), humanize.Bytes(s.BytesTotal))
	fmt.Printf("arena remaining:  %s\n", humanize.Bytes(s.BytesRemaining))
	fmt.Printf("free list length: %d\n", s.FreeListLength)

	if statDistribution {
		var max uint32
		for _, n := range s.ChainLengths {
			if n > max {
				max = n
			}
		}
		fmt.Printf("longest chain:    %d\n", max)
	}

	return nil
}
