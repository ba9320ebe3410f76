package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "List every used and free cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := e.Dump()
			if err != nil {
				return err
			}
			for _, entry := range result.Used {
				fmt.Printf("## used cell addr = %-6d key = %-16q val = %q\n", entry.Offset, entry.Key, entry.Val)
			}
			for _, offset := range result.Free {
				fmt.Printf("#  free cell addr = %-6d\n", offset)
			}
			return nil
		},
	}
}
