package cli

import (
	"github.com/spf13/cobra"
)

func newTaskHistoryCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "task-history <task-id>",
		Short: "Get the audit history of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			res, err := cli.client.getTaskHistory(args[0])
			if err != nil {
				return err
			}

			table := newTable([]string{
				"TASK ID",
				"EVENT TYPE",
				"TIMESTAMP",
				"DETAILS",
			})

			for _, entry := range res.Results {
				table.addRow([]string{
					entry.TaskId,
					entry.Type.String(),
					formatTime(entry.Timestamp),
					formatDetails(entry.Details),
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	return &c
}

func newReadinessCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "readiness",
		Short: "Check if the daemon is ready",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := cli.client.checkReadiness(); err != nil {
				return err
			}

			c.Println("ready")
			return nil
		},
	}

	return &c
}
