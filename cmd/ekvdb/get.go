package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"unix7.org/ekvdb/internal/storeerr"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Look up a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			val, offset, err := e.Get([]byte(args[0]))
			if errors.Is(err, storeerr.ErrNotFound) {
				fmt.Println("not found")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("offset=%d value=%q\n", offset, val)
			return nil
		},
	}
}
