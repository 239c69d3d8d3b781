package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/pkg/errors"
	layoutio "github.com/matzehuels/photowall/pkg/io"
	"github.com/matzehuels/photowall/pkg/preview"
	"github.com/matzehuels/photowall/pkg/wall"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	layoutFlags
	countFlags
	from      string  // render a saved layout instead of computing one
	format    string  // svg or png; derived from output when empty
	output    string  // output file
	showSlots bool    // draw slot markers
	labels    bool    // number the frames
	width     float64 // frame width
	height    float64 // frame height
	scale     float64 // png scale factor
}

// previewCommand creates the preview command, which draws a layout.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{
		output: "wall.svg",
		labels: true,
		width:  preview.DefaultFrameWidth,
		height: preview.DefaultFrameHeight,
		scale:  1,
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a wall layout as SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := previewFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runPreview(cmd.OutOrStdout(), &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	opts.countFlags.register(cmd)
	cmd.Flags().StringVar(&opts.from, "from", "", "render a layout JSON file written by 'layout -f json'")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png (default: from output extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file, - for stdout")
	cmd.Flags().BoolVar(&opts.showSlots, "slots", false, "draw slot anchors")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "number each frame")
	cmd.Flags().Float64Var(&opts.width, "frame-width", opts.width, "frame width in px")
	cmd.Flags().Float64Var(&opts.height, "frame-height", opts.height, "frame height in px")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png scale factor")

	return cmd
}

// previewFormat picks the explicit format or infers it from the output extension.
func previewFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
		if format == "" {
			format = formatSVG
		}
	}
	if format != formatSVG && format != formatPNG {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg' or 'png')", format)
	}
	return format, nil
}

func (c *CLI) runPreview(stdout io.Writer, opts *previewOpts) error {
	var (
		l   wall.Layout
		err error
	)
	if opts.from != "" {
		l, err = layoutio.ImportJSON(opts.from)
	} else {
		l, err = c.computeLayout(&opts.layoutFlags, &opts.countFlags)
	}
	if err != nil {
		return err
	}

	if !(opts.width > 0 && opts.height > 0) || opts.width > preview.MaxCanvasSize || opts.height > preview.MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidInput, "frame size %gx%g must be positive and at most %d px", opts.width, opts.height, preview.MaxCanvasSize)
	}

	renderOpts := []preview.Option{preview.WithFrameSize(opts.width, opts.height), preview.WithScale(opts.scale)}
	if opts.showSlots {
		renderOpts = append(renderOpts, preview.WithSlots())
	}
	if opts.labels {
		renderOpts = append(renderOpts, preview.WithLabels())
	}

	var data []byte
	switch opts.format {
	case formatPNG:
		c.Logger.Info("Rendering PNG preview")
		data, err = preview.RenderPNG(l, renderOpts...)
		if err != nil {
			return err
		}
	default:
		c.Logger.Info("Rendering SVG preview")
		data = preview.RenderSVG(l, renderOpts...)
	}
	c.Logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(stdout, "Drew %s frames", StyleNumber.Render(fmt.Sprint(len(l.Placements))))
	printFile(stdout, opts.output)
	return nil
}
