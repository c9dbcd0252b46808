package cmd

import (
	"fmt"
	"strings"

	constants "github.com/inference-gateway/hotcli/internal/constants"
	keybinding "github.com/inference-gateway/hotcli/internal/ui/keybinding"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
	cobra "github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect key combos",
	Long:  `Inspect key combos before binding them.`,
}

var keysCheckCmd = &cobra.Command{
	Use:   "check <combo>",
	Short: "Check whether a combo can be bound",
	Long: `Check a combo against the token(+token)* grammar and the reserved combos.

Example:
  hotcli keys check ctrl+s
  hotcli keys check ctrl+p+o`,
	Args: cobra.ExactArgs(1),
	RunE: checkCombo,
}

var keysReservedCmd = &cobra.Command{
	Use:   "reserved",
	Short: "List the combos that can never be bound",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  toggle the prompt\n", constants.ToggleCombo)
		for _, combo := range constants.InterruptCombos {
			fmt.Fprintf(out, "%s  terminal interrupt\n", combo)
		}
	},
}

func init() {
	keysCmd.AddCommand(keysCheckCmd)
	keysCmd.AddCommand(keysReservedCmd)
	rootCmd.AddCommand(keysCmd)
}

func checkCombo(cmd *cobra.Command, args []string) error {
	normalized, err := keybinding.ValidateCombo(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "combo:   %s\n", normalized)
	fmt.Fprintf(out, "tokens:  %s\n", strings.Join(keys.Tokens(normalized), ", "))
	fmt.Fprintf(out, "release: %s\n", keys.LastToken(normalized))

	if unknown := keybinding.UnknownTokens(normalized); len(unknown) > 0 {
		fmt.Fprintf(out, "warning: unknown tokens %s may never be reported as held\n", strings.Join(unknown, ", "))
	}
	return nil
}
