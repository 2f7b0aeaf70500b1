package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdugdh24/faithmatch-backend/internal/client/onboarding"
)

func newOnboardCommand(ctx *commandContext) *cobra.Command {
	var draftPath string
	var photos []string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Complete onboarding from a YAML draft",
		Long: "Walks the onboarding steps with the given draft, stopping at the first step\n" +
			"that does not validate. On the last step the photos are uploaded and the\n" +
			"profile is completed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if draftPath == "" {
				return fmt.Errorf("--draft is required")
			}
			file, err := readDraftFile(draftPath)
			if err != nil {
				return err
			}
			client, err := ctx.sessionClient()
			if err != nil {
				return err
			}

			wizard := onboarding.NewWizard(client, client, nil, ctx.logger.Named("onboarding"))
			defer wizard.Close()

			err = wizard.Edit(func(d *onboarding.Draft) error {
				if err := file.apply(d); err != nil {
					return err
				}
				for _, p := range photos {
					if err := addPhotoFile(d, p); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for {
				name := wizard.StepName()
				res := wizard.Advance(cmd.Context())
				if res.Err != nil {
					return fmt.Errorf("%s: %w", res.Message, explain(res.Err))
				}
				if res.Message != "" {
					return fmt.Errorf("step %q: %s", res.StepName, res.Message)
				}
				fmt.Fprintf(out, "✓ %s\n", name)
				if res.Complete {
					break
				}
			}

			p := wizard.Profile()
			fmt.Fprintf(out, "Profile complete for %s with %d photos.\n", p.DisplayName, len(p.Photos))
			return nil
		},
	}
	cmd.Flags().StringVar(&draftPath, "draft", "", "Path to the draft YAML file")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "Additional photo file, in order (repeatable)")
	return cmd
}
