package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "has <file> <key>",
		Short: "Test whether a key is present, without printing its value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHas(args[0], args[1])
		},
	}
	rootCmd.AddCommand(cmd)
}

func runHas(path, key string) error {
	tbl, _, err := loadTable(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if tbl.HasKey([]byte(key)) {
		fmt.Println("true")
		return nil
	}

	fmt.Println("false")
	os.Exit(1)
	return nil
}
