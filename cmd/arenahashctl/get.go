package main

import (
	"errors"
	"fmt"

	"github.com/gostonefire/arenahash"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Retrieve the value stored under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}
	rootCmd.AddCommand(cmd)
}

func runGet(path, key string) error {
	tbl, _, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	value, err := tbl.Retrieve([]byte(key))
	if err != nil {
		var nf arenahash.NotFoundError
		if errors.As(err, &nf) {
			return fmt.Errorf("%q: not found", key)
		}
		return fmt.Errorf("retrieve: %w", err)
	}

	fmt.Println(string(value))
	return nil
}
