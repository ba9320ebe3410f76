package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Upsert a key/value pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			offset, err := e.Set([]byte(args[0]), []byte(args[1]))
			if err != nil {
				return err
			}
			logrus.WithField("offset", offset).Infof("set %q", args[0])
			return nil
		},
	}
}
