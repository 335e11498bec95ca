package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file>",
		Short: "Split a list of encoding queries into shelf encodings",
		Long: `Convert reads a JSON array of encoding queries and prints the
{encoding, anyEncodings} pair. Entries with a concrete channel fill the
encoding map; a later entry for the same channel wins. Entries with a
wildcard channel are appended to anyEncodings in input order.

Use "-" to read from standard input.

Example:
  shelf convert encodings.json
  echo '[{"channel":"x","field":"a"},{"channel":"?","index":0,"field":"b"}]' | shelf convert -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return userError(err)
			}
			var encodings []types.EncodingQuery
			if err := json.Unmarshal(data, &encodings); err != nil {
				return userError(fmt.Errorf("parse encoding queries: %w", err))
			}
			return writeJSON(cmd.OutOrStdout(), types.FromEncodingQueries(encodings))
		},
	}
}
