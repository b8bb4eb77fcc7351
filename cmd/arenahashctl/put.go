package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put <file> <key> <value>",
		Short: "Insert or update a key/value pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(args[0], args[1], args[2])
		},
	}
	rootCmd.AddCommand(cmd)
}

func runPut(path, key, value string) error {
	tbl, buf, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if err := tbl.Insert([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	if err := saveTable(path, buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	printVerbose("put %q -> %q\n", key, value)
	return nil
}
