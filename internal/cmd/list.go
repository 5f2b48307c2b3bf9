package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tock/internal/export"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the task list",
	Long: `Print the numbered task list without starting a session.

With --match, only tasks whose description matches the glob pattern are
shown. Matches keep their position in the full list, so the numbers can be
passed to mark, unmark and delete.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listMatch string

func init() {
	listCmd.Flags().StringVarP(&listMatch, "match", "m", "", "only list tasks whose description matches this glob")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if listMatch == "" {
		fmt.Fprintln(out, s.list.Show().Message)
		return nil
	}

	items, err := export.Filter(s.list.Tasks(), listMatch)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "There are no tasks with the given keyword")
		return nil
	}
	return export.Write(out, export.FormatText, items)
}
