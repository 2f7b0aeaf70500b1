package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchesCommand(ctx *commandContext) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			views, err := client.Matches(cmd.Context(), limit, offset)
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No matches yet.")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				name, icebreaker := "-", ""
				if v.User != nil {
					name = v.User.DisplayName
				}
				if len(v.Match.Icebreakers) > 0 {
					icebreaker = v.Match.Icebreakers[0]
				}
				rows = append(rows, []string{v.Match.ID, name, v.Match.CreatedAt.Local().Format("2006-01-02"), icebreaker})
			}
			fmt.Fprintln(out, renderTable([]column{left("Match"), left("With"), left("Since"), left("Icebreaker").wrapAt(48)}, rows))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of matches")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of matches to skip")
	cmd.AddCommand(newUnmatchCommand(ctx))
	return cmd
}

func newUnmatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <match-id>",
		Short: "Unmatch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			if err := client.Unmatch(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Unmatched.")
			return nil
		},
	}
}

func newNotificationsCommand(ctx *commandContext) *cobra.Command {
	var unread bool
	var limit int
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			items, err := client.Notifications(cmd.Context(), unread, limit, 0)
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Nothing new.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, n := range items {
				state := "unread"
				if n.ReadAt != nil {
					state = "read"
				}
				rows = append(rows, []string{n.ID, strings.ReplaceAll(string(n.Type), "_", " "), n.ActorID, state})
			}
			fmt.Fprintln(out, renderTable([]column{left("ID"), left("Type"), left("From"), left("State")}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of notifications")
	cmd.AddCommand(&cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			if err := client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked as read.")
			return nil
		},
	})
	return cmd
}
