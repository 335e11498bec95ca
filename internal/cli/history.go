package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelves/internal/query"
	"github.com/mesh-intelligence/shelves/internal/reducer"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded editing sessions",
	}
	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryReplayCmd(a))
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.attachHistory()
			if err != nil {
				return err
			}
			defer history.Detach()

			sessions, err := history.ListSessions()
			if err != nil {
				return sysError(err)
			}
			if a.flags.jsonMode {
				if sessions == nil {
					sessions = []types.Session{}
				}
				return writeJSON(cmd.OutOrStdout(), sessions)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SESSION\tNAME\tCREATED")
			for _, s := range sessions {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.SessionID, s.Name, s.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func newHistoryReplayCmd(a *app) *cobra.Command {
	var upTo int64

	cmd := &cobra.Command{
		Use:   "replay <session-id>",
		Short: "Replay a session and print the resulting query",
		Long: `Replay folds the recorded actions of a session over its initial shelves
and prints the resulting spec query. --upto N stops after action N.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.attachHistory()
			if err != nil {
				return err
			}
			defer history.Detach()

			session, err := history.GetSession(args[0])
			if errors.Is(err, types.ErrNotFound) {
				return userError(fmt.Errorf("session %q not found", args[0]))
			}
			if err != nil {
				return sysError(err)
			}
			records, err := history.Actions(session.SessionID)
			if err != nil {
				return sysError(err)
			}

			actions := make([]types.Action, 0, len(records))
			for _, r := range records {
				if upTo > 0 && r.Seq > upTo {
					break
				}
				actions = append(actions, r.Action)
			}
			return query.Encode(cmd.OutOrStdout(), query.FromShelf(reducer.Replay(session.Initial, actions)))
		},
	}

	cmd.Flags().Int64Var(&upTo, "upto", 0, "replay only the first N actions")
	return cmd
}
