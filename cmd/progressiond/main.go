/*
progressiond is a daemon that orchestrates case progression workflows: it
consumes court events from a JetStream stream, derives process variables and
starts workflow runs, and serves the task history read API via HTTP.

Usage:

	--config <file>
		path to a YAML configuration file

Every configuration key can be overridden by a PROGRESSION_* environment
variable.
*/
package main

import (
	"os"
	"strings"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "unknown-version"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		configPath string
		code       int
	)

	c := cobra.Command{
		Use:          "progressiond",
		Short:        "Case progression orchestration daemon",
		Version:      version,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}

				// e.g. config -> PROGRESSION_CONFIG
				key := "PROGRESSION_" + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")
				if value, ok := os.LookupEnv(key); ok {
					f.Value.Set(value)
				}
			})

			config, err := daemon.LoadConfig(configPath)
			if err != nil {
				return err
			}

			code = daemon.Run(config)
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	c.SetArgs(args)

	if err := c.Execute(); err != nil {
		return 1
	}
	return code
}
