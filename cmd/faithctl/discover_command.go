package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdugdh24/faithmatch-backend/internal/client/swipequeue"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

type filterFlags struct {
	interests   []string
	faith       []string
	minAge      int
	maxAge      int
	maxDistance int
	limit       int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.interests, "interest", nil, "Only candidates sharing one of these interests")
	cmd.Flags().StringSliceVar(&f.faith, "faith", nil, "Faith journeys to include (defaults to your preferences)")
	cmd.Flags().IntVar(&f.minAge, "min-age", 0, "Minimum age")
	cmd.Flags().IntVar(&f.maxAge, "max-age", 0, "Maximum age")
	cmd.Flags().IntVar(&f.maxDistance, "max-distance", 0, "Maximum distance in km")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of candidates")
}

func (f *filterFlags) filter() domain.CandidateFilter {
	return domain.CandidateFilter{
		Interests:     f.interests,
		FaithJourney:  f.faith,
		MinAge:        f.minAge,
		MaxAge:        f.maxAge,
		MaxDistanceKm: f.maxDistance,
		Limit:         f.limit,
	}
}

// loadQueue fetches the feed into a fresh swipe queue.
func loadQueue(cmd *cobra.Command, ctx *commandContext, flags *filterFlags) (*swipequeue.Queue, error) {
	client, err := ctx.sessionClient()
	if err != nil {
		return nil, err
	}
	q := swipequeue.New(client, client, ctx.logger.Named("swipequeue"))
	if err := q.Load(cmd.Context(), flags.filter()); err != nil {
		return nil, explain(err)
	}
	return q, nil
}

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List ranked candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQueue(cmd, ctx, &flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if q.Len() == 0 {
				fmt.Fprintln(out, "No candidates right now. Try widening your filters.")
				return nil
			}
			fmt.Fprintln(out, renderCandidates(q.Candidates()))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func renderCandidates(cands []domain.Candidate) string {
	rows := make([][]string, 0, len(cands))
	for i, c := range cands {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Key(),
			c.DisplayName,
			strconv.Itoa(c.Age),
			c.FaithJourney,
			formatDistance(c.DistanceKm),
			strconv.Itoa(c.CompatibilityScore),
			strings.Join(c.MatchedInterests, ", "),
		})
	}
	return renderTable([]column{
		right("#"),
		left("ID"),
		left("Name"),
		right("Age"),
		left("Faith"),
		right("Distance"),
		right("Score"),
		left("Shared interests").wrapAt(32),
	}, rows)
}

func formatDistance(km *float64) string {
	if km == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f km", *km)
}
