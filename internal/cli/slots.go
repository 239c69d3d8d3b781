package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// slotsCommand creates the slots command, which lists the configured anchors.
func (c *CLI) slotsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the configured slot anchors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve(&layoutFlags{configPath: configPath})
			if err != nil {
				return err
			}
			slots := cfg.SlotList()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, slotTable(slots))
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d slots · rotation %g..%g° · jitter x %g..%g, y %g..%g",
				len(slots), cfg.Rotation.Min, cfg.Rotation.Max,
				cfg.Jitter.X.Min, cfg.Jitter.X.Max, cfg.Jitter.Y.Min, cfg.Jitter.Y.Max)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	return cmd
}
