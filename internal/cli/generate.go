package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyforge/internal/config"
	"keyforge/internal/layout"
	"keyforge/internal/scene"
)

// generateCommand creates the generate command for emitting a placed scene.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		configPath string
		output     string
		parallel   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Place every configured key on the curves and write the scene",
		Long: `Place every configured key on the curves and write the scene.

The generate command reads a TOML configuration describing the curve
constants, the row/key layout, and the component bounding boxes, computes a
rigid placement for every keycap, switch, and plate instance, and writes the
resulting scene description as JSON.

Without --config the built-in reference configuration is used.`,
		Example: `  # Reference configuration to stdout
  keyforge generate

  # Custom configuration to a file
  keyforge generate --config board.toml -o scene.json`,
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
			em.SetWorkers(parallel)

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := em.Emit(cmd.Context(), scene.NewJSONSink(w)); err != nil {
				return err
			}

			if output != "" {
				printSuccess("scene generated")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (built-in defaults if empty)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "rows computed concurrently (0 = GOMAXPROCS)")

	return cmd
}

// loadConfig resolves the run configuration: the named file, or the built-in
// reference configuration when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
