package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biosecret/todopages/database"
	"github.com/biosecret/todopages/services"
	"github.com/biosecret/todopages/store"
)

var (
	userPassword  string
	userEmail     string
	userFirstName string
	userLastName  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user and its default profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserCreate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user with all pages, todos and profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

func init() {
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password (at least 8 characters)")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userCreateCmd.Flags().StringVar(&userFirstName, "first-name", "", "First name")
	userCreateCmd.Flags().StringVar(&userLastName, "last-name", "", "Last name")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
}

// withAccounts mở database, chạy fn với Accounts rồi đóng kết nối
func withAccounts(fn func(ctx context.Context, accounts *services.Accounts) error) error {
	cfg, logData, err := setup()
	if err != nil {
		return err
	}
	defer logData.Close()

	ctx := context.Background()
	db, dialect, err := openDB(ctx, cfg, logData)
	if err != nil {
		return err
	}
	defer database.Close(db, logData.Logger)

	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}

	svc := services.New(store.New(db, dialect), services.Config{})
	return fn(ctx, svc.Accounts)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	return withAccounts(func(ctx context.Context, accounts *services.Accounts) error {
		user, err := accounts.Register(ctx, services.Registration{
			Username:  args[0],
			Password:  userPassword,
			Email:     userEmail,
			FirstName: userFirstName,
			LastName:  userLastName,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", user.Username, user.ID)
		return nil
	})
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	return withAccounts(func(ctx context.Context, accounts *services.Accounts) error {
		if err := accounts.DeleteByUsername(ctx, args[0]); err != nil {
			return fmt.Errorf("delete user %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", args[0])
		return nil
	})
}
