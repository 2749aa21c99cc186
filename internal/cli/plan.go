package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keyforge/internal/layout"
)

// planCommand creates the plan command for inspecting the resolved layout.
func (c *CLI) planCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the resolved row angles and key offsets (debug tool)",
		Long: `Print the resolved row angles and key offsets without emitting a scene.

For each row the spiral parameter the arc-length solve produced is shown,
followed by every key's lateral offset from the row center and the roll
angle that offset maps to on the hand arc.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			em, err := layout.New(cfg, c.Logger)
			if err != nil {
				return err
			}

			rows := cfg.Rows()
			printKeyValue("Rows", fmt.Sprintf("%d", len(rows)))
			printKeyValue("Unit", fmt.Sprintf("%.2fmm + %.2fmm gap", cfg.UnitSize, cfg.HorizontalSpace))
			printKeyValue("Roll radius", fmt.Sprintf("%.2fmm", cfg.RollArcRadius()))

			for i, row := range rows {
				theta := em.RowAngle(i)
				fmt.Println(StyleTitle.Render(fmt.Sprintf("row %d", i)) +
					StyleDim.Render(fmt.Sprintf("  θ=%.4f rad", theta)))

				widths := make([]float64, len(row.Keys))
				for j, k := range row.Keys {
					widths[j] = k.Width
				}
				offsets := layout.PlanRow(widths, cfg.UnitSize+cfg.HorizontalSpace)
				angles := layout.RowAngles(offsets, cfg.RollArcRadius())

				for j := range offsets {
					label := row.Keys[j].Label
					if label == "" {
						label = fmt.Sprintf("%d/%d", i, j)
					}
					fmt.Printf("  %s %8.2fmm  %8.4f rad\n",
						StyleValue.Render(pad(label, 10)), offsets[j], angles[j])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (built-in defaults if empty)")

	return cmd
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
