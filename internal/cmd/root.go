package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/tock/internal/config"
	"github.com/Iron-Ham/tock/internal/repl"
)

var rootCmd = &cobra.Command{
	Use:   "tock",
	Short: "A personal task tracker you talk to",
	Long: `tock keeps a list of todos, deadlines and events in a plain text file
and lets you manage it one command at a time.

Run without a subcommand to start a line console:

  todo read book
  deadline return book /by 2025-02-28
  event project meeting /from Mon 2pm /to 4pm
  list
  mark 1
  unmark 1
  delete 2
  find book
  bye`,
	SilenceUsage: true,
	RunE:         runConsole,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tock/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "task file (overrides storage.path)")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("file"))

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TOCK")
	// e.g., TOCK_STORAGE_PATH for storage.path
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runConsole(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	console := repl.New(s.assistant(), cmd.InOrStdin(), cmd.OutOrStdout())
	return console.Run(cmd.Context())
}
