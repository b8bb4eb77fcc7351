package main

import (
	"errors"
	"fmt"

	"github.com/gostonefire/arenahash"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <file> <key>",
		Short: "Remove a key, freeing its record for reuse",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args[0], args[1])
		},
	}
	rootCmd.AddCommand(cmd)
}

func runRemove(path, key string) error {
	tbl, buf, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if err := tbl.Remove([]byte(key)); err != nil {
		var nf arenahash.NotFoundError
		if errors.As(err, &nf) {
			return fmt.Errorf("%q: not found", key)
		}
		return fmt.Errorf("remove: %w", err)
	}

	if err := saveTable(path, buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	printVerbose("removed %q\n", key)
	return nil
}
