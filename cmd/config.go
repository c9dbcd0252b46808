package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	config "github.com/inference-gateway/hotcli/config"
	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage console configuration",
	Long:  `Manage the hotcli configuration file and inspect the effective settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project configuration",
	Long: `Initialize a new .hotcli/config.yaml configuration file in the current directory,
plus a .gitignore that keeps console logs out of version control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initializeProject(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file, .env and HOTCLI_ environment overrides are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		return enc.Close()
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "Overwrite existing files if they already exist")
	configInitCmd.Flags().String("policy", "", "handler failure policy to write: report or crash")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func initializeProject(cmd *cobra.Command) error {
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	policy, _ := cmd.Flags().GetString("policy")

	configPath := configPathFlag(cmd)
	gitignorePath := filepath.Join(filepath.Dir(configPath), config.GitignoreFileName)

	if !overwrite {
		for _, path := range []string{configPath, gitignorePath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --overwrite to replace)", path)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Console.HandlerFailure = policy

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	gitignoreContent := `# Ignore console log files
logs/*.log
`

	if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0644); err != nil {
		return fmt.Errorf("failed to create .gitignore file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully initialized hotcli configuration\n")
	fmt.Fprintf(out, "   Created: %s\n", configPath)
	fmt.Fprintf(out, "   Created: %s\n", gitignorePath)
	if policy == "" {
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Set console.handler_failure to \"report\" or \"crash\" before running a console.")
	}

	return nil
}
