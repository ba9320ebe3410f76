package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show allocator-path counters for this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			s := e.Stats()
			fmt.Printf("head-init  = %.0f\n", s.HeadInit)
			fmt.Printf("free-reuse = %.0f\n", s.FreeReuse)
			fmt.Printf("tail-bump  = %.0f\n", s.TailBump)
			return nil
		},
	}
}
