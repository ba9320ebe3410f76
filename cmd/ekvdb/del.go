package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"unix7.org/ekvdb/internal/storeerr"
)

func newDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			offset, err := e.Del([]byte(args[0]))
			if errors.Is(err, storeerr.ErrNotFound) {
				fmt.Println("not found")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("deleted offset=%d\n", offset)
			return nil
		},
	}
}
