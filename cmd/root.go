package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/hotcli/config"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	cobra "github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hotcli",
	Short: "A hotkey-driven interactive console",
	Long: `hotcli shares one terminal between a command prompt and background tasks.
Press ctrl+c to toggle between typing commands and watching task output;
global hotkeys run handlers without touching the prompt.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to hotcli!")
		fmt.Println("Use 'hotcli demo' to try the console or --help to see available commands.")
	},
}

// Execute runs the root command
func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging to the log file")
}

// loadConfig reads the config selected by --config and initializes the logger
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(config.NewViper(configPath))
	if err != nil {
		return nil, err
	}

	if err := logger.Init(verbose, cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// configPathFlag returns --config or the default path
func configPathFlag(cmd *cobra.Command) string {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		return config.DefaultConfigPath
	}
	return configPath
}
