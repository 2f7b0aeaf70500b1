package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var idToken string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Google ID token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(idToken)
			if token == "" {
				token = strings.TrimSpace(os.Getenv("FAITHCTL_ID_TOKEN"))
			}
			if token == "" {
				return fmt.Errorf("an ID token is required (--id-token or FAITHCTL_ID_TOKEN)")
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			sess, err := client.Login(cmd.Context(), token, ctx.cfg.DeviceInfo)
			if err != nil {
				return err
			}
			if err := saveSession(ctx.cfg.SessionFile, sess); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			who := ""
			if u := sess.User(); u != nil {
				who = u.Email
			}
			if sess.IsNewUser() {
				fmt.Fprintf(out, "Welcome, %s! Your account was created.\n", who)
				fmt.Fprintln(out, "Next: faithctl onboard --draft draft.yaml")
			} else {
				fmt.Fprintf(out, "Logged in as %s\n", who)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&idToken, "id-token", "", "Google ID token")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if errors.Is(err, errNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if err != nil {
				return err
			}
			logoutErr := client.Logout(cmd.Context())
			if err := removeSession(ctx.cfg.SessionFile); err != nil {
				return err
			}
			if logoutErr != nil {
				ctx.logger.Warn("server logout failed; local session removed anyway", zap.Error(logoutErr))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			me, err := client.Me(cmd.Context())
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nuser id: %s\nsession expires: %s\n",
				me.User.DisplayName, me.User.Email, me.User.ID, me.SessionExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}
