package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/avencourt/uastack/internal/cli/output"
	"github.com/avencourt/uastack/pkg/ua"
)

var nodeidCmd = &cobra.Command{
	Use:   "nodeid <id>...",
	Short: "Parse NodeId strings and show their components",
	Long: `Parses NodeId strings in the Part 6 textual form ("i=85",
"ns=2;s=Demo.Device", "g=09087e75-8e5e-499b-954f-f2a9603db28a",
"b=opaque") and prints namespace, identifier type, canonical form and
hash.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := output.NewTable("Input", "Namespace", "Type", "Canonical", "Hash")
		for _, arg := range args {
			n, err := ua.ParseNodeID(arg)
			if err != nil {
				return err
			}
			table.AddRow(arg,
				formatUint(uint64(n.Namespace)),
				n.Type.String(),
				n.String(),
				formatHex(n.Hash()))
		}
		table.Render(os.Stdout)
		return nil
	},
}
