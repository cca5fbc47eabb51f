package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio/internal/db"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if err := db.Init(appConfig.DatabasePath); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		created, err := db.UpsertUser(username, password)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", username)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "reset password of %s\n", username)
		}
		return nil
	},
}

func init() {
	userCreateCmd.Flags().String("username", "", "admin username")
	userCreateCmd.Flags().String("password", "", "admin password")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
