package main

import (
	"errors"
	"fmt"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/spf13/cobra"
)

func newUsersCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage API users",
	}
	cmd.AddCommand(newUsersAddCmd(opts))
	return cmd
}

func newUsersAddCmd(opts *globalOptions) *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user that can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			var pw models.Password
			if err := pw.Set(password); err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			user, err := s.store.AddUser(s.ctx, &models.User{Email: email, Name: name, PasswordHash: pw.Hash})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d <%s>\n", user.UserID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
