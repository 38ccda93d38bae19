package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/project"
	"github.com/felixgeelhaar/launchpad/domain/ticket"
)

// newGraphCmd creates the graph command, which prints the transition graph
// of a lifecycle entity.
func (a *App) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "graph [application|milestone|ticket]",
		Short:     "Print the transition graph of a lifecycle entity",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"application", "milestone", "ticket"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "application":
				a.printApplicationGraph()
			case "milestone":
				a.printMilestoneGraph()
			case "ticket":
				a.printTicketGraph()
			default:
				return fmt.Errorf("unknown entity %q", args[0])
			}
			return nil
		},
	}
	return cmd
}

func (a *App) printApplicationGraph() {
	fmt.Fprintln(a.stdout, "Application review graph (withdrawn reachable from any non-terminal state):")
	for _, from := range admission.AllStatuses() {
		next := admission.NextStatuses(from)
		if len(next) == 0 {
			fmt.Fprintf(a.stdout, "  %-20s (terminal)\n", from)
			continue
		}
		targets := make([]string, len(next))
		for i, to := range next {
			targets[i] = string(to)
		}
		fmt.Fprintf(a.stdout, "  %-20s -> %s\n", from, strings.Join(targets, ", "))
	}
}

func (a *App) printMilestoneGraph() {
	all := []project.MilestoneStatus{
		project.MilestonePending,
		project.MilestoneInProgress,
		project.MilestoneCompleted,
		project.MilestoneCancelled,
	}
	fmt.Fprintln(a.stdout, "Milestone graph:")
	printEdges(a, all, func(from, to project.MilestoneStatus) bool {
		return project.CanTransition(from, to)
	})
}

func (a *App) printTicketGraph() {
	all := []ticket.Status{
		ticket.StatusOpen,
		ticket.StatusInProgress,
		ticket.StatusResolved,
		ticket.StatusClosed,
	}
	fmt.Fprintln(a.stdout, "Support ticket graph:")
	printEdges(a, all, func(from, to ticket.Status) bool {
		return ticket.CanTransition(from, to)
	})
}

func printEdges[S ~string](a *App, all []S, canTransition func(from, to S) bool) {
	for _, from := range all {
		var targets []string
		for _, to := range all {
			if canTransition(from, to) {
				targets = append(targets, string(to))
			}
		}
		if len(targets) == 0 {
			fmt.Fprintf(a.stdout, "  %-20s (terminal)\n", from)
			continue
		}
		fmt.Fprintf(a.stdout, "  %-20s -> %s\n", from, strings.Join(targets, ", "))
	}
}
