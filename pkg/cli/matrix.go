package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/newsdesk-lab/copydesk/pkg/cli/config"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// cmdMatrix prints the effective workflow policy: the stage transition
// matrix per role and the capability table. Useful for reviewing what a
// policy file actually changes before deploying it.
func cmdMatrix() *cli.Command {
	var policyCfg config.Policy
	var useStage bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "stage",
			Usage:       "Show the six-stage view instead of the full status matrix",
			Destination: &useStage,
		},
	}
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:  "matrix",
		Usage: "Print the effective transition matrix and capability table",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			heading := color.New(color.FgCyan, color.Bold)
			roleColor := color.New(color.FgYellow)

			heading.Println("Transition Matrix")
			for _, role := range types.AllRoles() {
				roleColor.Printf("\n%s\n", role)

				w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
				if useStage {
					for _, from := range types.AllStoryStages() {
						tos := engine.LegalNextStages(role, from)
						fmt.Fprintf(w, "  %s\t-> %s\n", from, joinStages(tos))
					}
				} else {
					for _, from := range types.AllStoryStatuses() {
						tos := engine.LegalNextStatuses(role, from)
						fmt.Fprintf(w, "  %s\t-> %s\n", from, joinStatuses(tos))
					}
				}
				w.Flush() //nolint:errcheck // stdout
			}

			heading.Println("\nCapability Table")
			caps := engine.Capabilities()
			for _, role := range types.AllRoles() {
				roleColor.Printf("\n%s\n", role)

				w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
				for _, kind := range types.AllResourceKinds() {
					actions := caps.Actions(role, kind)
					if len(actions) == 0 {
						continue
					}
					names := make([]string, len(actions))
					for i, a := range actions {
						names[i] = a.String()
					}
					fmt.Fprintf(w, "  %s\t%s\n", kind, strings.Join(names, ", "))
				}
				w.Flush() //nolint:errcheck // stdout
			}

			return nil
		},
	}
}

func joinStatuses(statuses []types.StoryStatus) string {
	if len(statuses) == 0 {
		return color.New(color.Faint).Sprint("(none)")
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func joinStages(stages []types.StoryStage) string {
	if len(stages) == 0 {
		return color.New(color.Faint).Sprint("(none)")
	}
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
