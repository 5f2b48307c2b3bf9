package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Run a single command and exit",
	Long: `Run one command line, print the reply and exit.

The arguments are joined with spaces, so quoting is optional:

  tock run todo read book
  tock run deadline return book /by 2025-02-28
  tock run mark 1

The exit status is non-zero when the command is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOnce,
}

func init() {
	// Command lines use /by, /from and /to, never flags.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	reply := s.assistant().Handle(strings.Join(args, " "))
	fmt.Fprintln(cmd.OutOrStdout(), reply.Message)

	if reply.Failed() {
		// The reply already says what went wrong.
		cmd.SilenceErrors = true
		return reply.Err
	}
	return nil
}
