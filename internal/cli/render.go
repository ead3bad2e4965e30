package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/pkg/config"
	"folio/pkg/pipeline"
)

type renderOpts struct {
	config           string  // TOML config path
	dpi              float64 // overrides the config when > 0
	maxFloatAttempts int     // overrides the config when >= 0
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{maxFloatAttempts: -1}

	cmd := &cobra.Command{
		Use:   "render <document.yaml> <output.png>",
		Short: "Lay out a document and paint it to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "image resolution used to size marker images")
	cmd.Flags().IntVar(&opts.maxFloatAttempts, "max-float-attempts", -1, "float application limit per layout pass")
	return cmd
}

func loadConfig(opts renderOpts) (config.Config, error) {
	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			return cfg, err
		}
	}
	if opts.dpi > 0 {
		cfg.DPI = opts.dpi
	}
	if opts.maxFloatAttempts >= 0 {
		cfg.MaxFloatAttempts = opts.maxFloatAttempts
	}
	return cfg, cfg.Validate()
}

func runRender(cmd *cobra.Command, input, output string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := pipeline.RunFile(ctx, input, pipeline.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	if err := res.Renderer.SavePNG(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Rendered %s to %s: %d blocks, %d markers", input, output, res.Stats.Blocks, res.Stats.Markers))
	return nil
}
