package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/folio/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content data directory",
	Long: `check loads every data file the way the server does and prints the
number of cards per section. Unparseable files are reported and make the
command fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), appConfig.DataDir)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(out io.Writer, dir string) error {
	lib, err := content.LoadLibrary(dir)
	if err != nil {
		return fmt.Errorf("check %s: %w", dir, err)
	}

	fmt.Fprintf(out, "data directory: %s\n", dir)
	if name := lib.Hero.FullName(); name != "" {
		fmt.Fprintf(out, "  hero:       %s\n", name)
	}
	fmt.Fprintf(out, "  about:      %t\n", lib.HasAbout())

	counts := lib.Counts()
	for _, def := range content.Definitions {
		n, ok := counts[def.ID]
		if !ok {
			fmt.Fprintf(out, "  %-11s omitted (empty)\n", def.ID+":")
			continue
		}
		fmt.Fprintf(out, "  %-11s %d\n", def.ID+":", n)
	}
	return nil
}
