// Package cli implements progression, a client for the orchestration daemon's
// HTTP read API.
package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envLookupAllowed = "envLookupAllowed" // flag level annotation that allows an environment variable lookup
	envPrefix        = "PROGRESSION_"
	program          = "progression"

	envHttpBasicAuthUsername = envPrefix + "HTTP_BASIC_AUTH_USERNAME"
	envHttpBasicAuthPassword = envPrefix + "HTTP_BASIC_AUTH_PASSWORD"
)

func New(version string) *Cli {
	cli := Cli{version: version}

	cli.rootCmd = newRootCmd(&cli)

	return &cli
}

type Cli struct {
	version string

	rootCmd *cobra.Command

	client *client
}

func (c *Cli) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *Cli) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func newRootCmd(cli *Cli) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	c := cobra.Command{
		Use:     program,
		Short:   "A client for progression orchestration daemons",
		Version: cli.version,
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			c.SilenceUsage = true

			if cli.client != nil {
				return // skip client creation when testing
			}

			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}
				if _, ok := f.Annotations[envLookupAllowed]; !ok {
					return
				}

				// e.g. url -> PROGRESSION_URL
				key := envPrefix + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")

				if value, ok := os.LookupEnv(key); ok {
					f.Value.Set(value)
				}
			})

			cli.client = newClient(url, timeout, os.Getenv(envHttpBasicAuthUsername), os.Getenv(envHttpBasicAuthPassword))
		},
		RunE: func(c *cobra.Command, args []string) error {
			return c.Help()
		},
	}

	c.PersistentFlags().StringVar(&url, "url", "http://127.0.0.1:8080", "URL of the daemon's HTTP API")
	c.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	c.PersistentFlags().SetAnnotation("url", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("timeout", envLookupAllowed, nil)

	c.AddCommand(newTaskHistoryCmd(cli))
	c.AddCommand(newReadinessCmd(cli))

	return &c
}
