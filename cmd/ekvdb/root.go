// Command ekvdb is the demo/inspection driver for the ekvdb storage
// engine. It exercises the engine but defines none of its on-device
// semantics itself, so it stays a thin cobra CLI over the store
// package.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unix7.org/ekvdb/device"
	"unix7.org/ekvdb/store"
)

var (
	cfgFile    string
	devicePath string
	deviceSize int
	logLevel   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ekvdb",
		Short: "Inspect and exercise the ekvdb device-resident key/value engine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ekvdb.yaml)")
	root.PersistentFlags().StringVar(&devicePath, "device", "", "backing file for the device (empty: in-memory)")
	root.PersistentFlags().IntVar(&deviceSize, "size", 16*1024, "device size in bytes (used when creating a new device)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	root.AddCommand(newSetCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newDelCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newBenchCmd())

	return root
}

func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".ekvdb")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EKVDB")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	}
	if devicePath == "" {
		devicePath = viper.GetString("device")
	}
	if v := viper.GetInt("size"); v != 0 && !cmd.Flags().Changed("size") {
		deviceSize = v
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// openEngine opens the engine against a file-backed device when
// --device is set, or a fresh in-memory device otherwise.
func openEngine() (*store.Engine, func(), error) {
	if devicePath == "" {
		dev := device.NewMem(deviceSize)
		e, err := store.Open(dev)
		return e, func() {}, err
	}

	f, err := device.OpenFile(devicePath, deviceSize)
	if err != nil {
		return nil, func() {}, err
	}
	e, err := store.Open(f)
	if err != nil {
		f.Close()
		return nil, func() {}, err
	}
	return e, func() { f.Close() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
