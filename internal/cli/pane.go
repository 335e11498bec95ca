package cli

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelves/internal/dnd"
	"github.com/mesh-intelligence/shelves/internal/query"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

// paneEntry is the JSON form of one shelf of the pane.
type paneEntry struct {
	ShelfID  types.ShelfID        `json:"shelfId"`
	Label    string               `json:"label"`
	FieldDef *types.ShelfFieldDef `json:"fieldDef,omitempty"`
}

func newPaneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pane <query>",
		Short: "List the encoding shelves of a spec query",
		Long: `Pane loads a spec query and lists the shelves of its encoding pane:
every channel in display order, then the wildcard shelves, then one empty
wildcard shelf to drop new fields on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return userError(err)
			}
			q, err := query.Decode(bytes.NewReader(data))
			if err != nil {
				return userError(err)
			}
			pane := dnd.NewPane(query.ToShelf(q), types.ActionHandlerFunc(func(types.Action) {}))
			if a.flags.jsonMode {
				entries := make([]paneEntry, 0, len(pane))
				for _, sh := range pane {
					entries = append(entries, paneEntry{ShelfID: sh.ID, Label: sh.Label(), FieldDef: sh.FieldDef})
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			return printPane(cmd.OutOrStdout(), pane)
		},
	}
}

func printPane(w io.Writer, pane []*dnd.EncodingShelf) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHELF\tLABEL\tFIELD\tTYPE")
	for _, sh := range pane {
		field, typ := dnd.PlaceholderStyle(false, false), ""
		if sh.FieldDef != nil {
			field, typ = sh.FieldDef.DisplayTitle(), string(sh.FieldDef.Type)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sh.ID, sh.Label(), field, typ)
	}
	return tw.Flush()
}
