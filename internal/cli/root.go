package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mkdbupgrade",
	Short: "Build an Evergreen database upgrade script between two git references",
	Long: `mkdbupgrade compares the upgrade directory of two git references and writes
one SQL script that brings a database from the first version to the second.

Upgrade files new in (or changed in) the target reference are merged into a
single transaction in upgrade-number order. Files matching a --move pattern
keep their own transactions and run afterwards, byte for byte. Prepend and
append files are copied verbatim around the result.

The target reference defaults to the checked-out branch. Version labels are
taken from reference names such as rel_3_7_4 (giving 3.7.4) unless set with
--from-version and --to-version.

Defaults may be kept in .mkdbupgrade.yaml at the repository root; flags
override them, and list flags add to the lists from the file.

Examples:
  # Upgrade from 3.7.4 to the checked-out release branch
  mkdbupgrade -f rel_3_7_4

  # Keep the reingest upgrades out of the main transaction
  mkdbupgrade -f origin/rel_3_7_4 -t origin/rel_3_15_4 -m reingest -m .data.

  # Local tweaks before and after, written into ./out with a prefix
  mkdbupgrade -f rel_3_7_4 -p local/pre.sql -a local/post.sql -P cwmars- -O out

  # See what would be built without writing anything
  mkdbupgrade -f rel_3_7_4 --dry-run > preview.sql

Exit Codes:
  0  - Success
  1  - General error (not a git repository, editor failed)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or undetectable version
  11 - Git reference not found (fetch it first)
  12 - Output file exists (use --clobber)
  13 - Malformed or duplicate upgrade number
  14 - Prepend/append file unreadable
  15 - No upgrades between the two references`,
	Args:         cobra.NoArgs,
	RunE:         runBuild,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for mkdbupgrade")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	registerBuildFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
