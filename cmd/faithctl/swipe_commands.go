package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func newSwipeCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Swipe through the feed interactively",
		Long:  "Shows candidates one at a time. Answer l (like), p (pass), s (skip) or q (quit).",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQueue(cmd, ctx, &flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())
			skipped := map[string]bool{}

			for {
				c, ok := nextUnskipped(q.Candidates(), skipped)
				if !ok {
					fmt.Fprintln(out, "That's everyone for now.")
					return nil
				}
				fmt.Fprintf(out, "\n%s, %d · %s\n", c.DisplayName, c.Age, c.FaithJourney)
				if c.Bio != nil {
					fmt.Fprintln(out, *c.Bio)
				}
				if len(c.MatchedInterests) > 0 {
					fmt.Fprintf(out, "You both like: %s\n", strings.Join(c.MatchedInterests, ", "))
				}
				fmt.Fprint(out, "[l]ike / [p]ass / [s]kip / [q]uit: ")

				if !in.Scan() {
					if err := in.Err(); err != nil && !errors.Is(err, io.EOF) {
						return err
					}
					return nil
				}
				switch strings.ToLower(strings.TrimSpace(in.Text())) {
				case "l", "like":
					res, err := q.Like(cmd.Context(), c.Key())
					if err != nil {
						fmt.Fprintf(out, "Could not like %s: %v\n", c.DisplayName, explain(err))
						continue
					}
					printLikeResult(out, c.DisplayName, res)
				case "p", "pass":
					if err := q.Pass(cmd.Context(), c.Key()); err != nil {
						fmt.Fprintf(out, "Could not pass on %s: %v\n", c.DisplayName, explain(err))
					}
				case "s", "skip":
					skipped[c.Key()] = true
				case "q", "quit":
					return nil
				default:
					fmt.Fprintln(out, "Please answer l, p, s or q.")
				}
			}
		},
	}
	flags.register(cmd)
	return cmd
}

func nextUnskipped(cands []domain.Candidate, skipped map[string]bool) (domain.Candidate, bool) {
	for _, c := range cands {
		if !skipped[c.Key()] {
			return c, true
		}
	}
	return domain.Candidate{}, false
}

func printLikeResult(out io.Writer, name string, res *domain.LikeResult) {
	if !res.IsMatch {
		fmt.Fprintf(out, "Liked %s.\n", name)
		return
	}
	fmt.Fprintf(out, "It's a match with %s!\n", name)
	if res.Match != nil && res.Match.Explanation != nil {
		fmt.Fprintln(out, *res.Match.Explanation)
	}
}

func newLikeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "like <user-id>",
		Short: "Like a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			res, err := client.Like(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			printLikeResult(cmd.OutOrStdout(), args[0], res)
			return nil
		},
	}
}

func newPassCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pass <user-id>",
		Short: "Pass on a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}
			if err := client.Pass(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Passed on %s.\n", args[0])
			return nil
		},
	}
}
