package commands

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"contractorpm/collections"
)

// NewSeedDemoCommand fills a user's account with a demo project. The user
// is created when --password is given and no account exists yet.
func NewSeedDemoCommand(app core.App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:          "seed-demo",
		Short:        "Create demo worker types and a demo project for a user",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.FindAuthRecordByEmail(collections.Users, email)
			switch {
			case err == nil:
			case errors.Is(err, sql.ErrNoRows) && password != "":
				if user, err = createUser(app, email, password); err != nil {
					return err
				}
			case errors.Is(err, sql.ErrNoRows):
				return fmt.Errorf("no user with email %s (pass --password to create one)", email)
			default:
				return fmt.Errorf("find user: %w", err)
			}

			if err := collections.SeedDemo(app, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Demo data ready for %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to seed")
	cmd.Flags().StringVar(&password, "password", "", "password for a new user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func createUser(app core.App, email, password string) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(collections.Users)
	if err != nil {
		return nil, fmt.Errorf("find users collection: %w", err)
	}

	user := core.NewRecord(col)
	user.SetEmail(email)
	user.SetPassword(password)
	user.SetVerified(true)
	if err := app.Save(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
