package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avencourt/uastack/internal/cli/output"
	"github.com/avencourt/uastack/internal/service/view"
	"github.com/avencourt/uastack/pkg/addrspace/memspace"
	"github.com/avencourt/uastack/pkg/ua"
)

var browseDirection string

var browseCmd = &cobra.Command{
	Use:   "browse [node-id]",
	Short: "Browse a node of the sample address space",
	Long: `Runs the Browse engine against the built-in sample address space and
prints the outgoing references of the given node (the Objects folder by
default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node := ua.NewNumericNodeID(0, 85)
		if len(args) == 1 {
			parsed, err := ua.ParseNodeID(args[0])
			if err != nil {
				return err
			}
			node = parsed
		}
		var direction ua.BrowseDirection
		switch browseDirection {
		case "forward":
			direction = ua.BrowseDirectionForward
		case "inverse":
			direction = ua.BrowseDirectionInverse
		case "both":
			direction = ua.BrowseDirectionBoth
		default:
			return fmt.Errorf("invalid direction %q", browseDirection)
		}

		engine := view.NewEngine(memspace.NewSampleSpace(), view.DefaultConfig(), nil)
		out := engine.Browse(view.BrowseParams{
			Node:       node,
			Direction:  direction,
			ResultMask: ua.ResultMaskAll,
		})
		if out.Status.IsBad() {
			return fmt.Errorf("browse failed: %s", out.Status)
		}

		table := output.NewTable("Reference", "Dir", "Target", "BrowseName", "Class")
		for _, ref := range out.References {
			dir := "->"
			if !ref.IsForward {
				dir = "<-"
			}
			table.AddRow(
				ref.ReferenceTypeID.String(),
				dir,
				ref.NodeID.String(),
				ref.BrowseName.String(),
				ref.NodeClass.String(),
			)
		}
		table.Render(os.Stdout)
		return nil
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseDirection, "direction", "forward", "browse direction: forward, inverse or both")
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatHex(v uint64) string {
	return fmt.Sprintf("%016x", v)
}
