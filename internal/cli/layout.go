package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/pkg/config"
	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/htmldoc"
	layoutio "github.com/matzehuels/photowall/pkg/io"
	"github.com/matzehuels/photowall/pkg/wall"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatSVG   = "svg"
	formatPNG   = "png"
)

// countFlags decide how many targets a layout is computed for.
type countFlags struct {
	count int    // explicit target count, -1 = one per slot
	page  string // count the matching elements of this page instead
}

func (f *countFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", -1, "number of images (default: one per slot)")
	cmd.Flags().StringVar(&f.page, "page", "", "count the images of this HTML page")
}

// targetCount resolves the number of targets to lay out.
func (f *countFlags) targetCount(cfg config.Config) (int, error) {
	if f.page != "" {
		if f.count >= 0 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "--count and --page are mutually exclusive")
		}
		doc, err := htmldoc.Load(f.page)
		if err != nil {
			return 0, err
		}
		return len(doc.Elements(cfg.Selector)), nil
	}
	if f.count < 0 {
		return len(cfg.SlotList()), nil
	}
	return f.count, nil
}

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	layoutFlags
	countFlags
	format string // table or json
	output string // output file, empty for stdout
}

// layoutCommand creates the layout command, which computes a layout without
// touching any page.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a wall layout and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable && opts.format != formatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'table' or 'json')", opts.format)
			}
			return c.runLayout(cmd.OutOrStdout(), &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	opts.countFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table (default), json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runLayout(stdout io.Writer, opts *layoutOpts) error {
	l, err := c.computeLayout(&opts.layoutFlags, &opts.countFlags)
	if err != nil {
		return err
	}

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}

	switch opts.format {
	case formatJSON:
		if err := layoutio.WriteJSON(l, w); err != nil {
			return err
		}
	default:
		fmt.Fprintln(w, placementTable(l))
		if l.Skipped > 0 {
			printWarning(w, "%d images skipped: only %d slots", l.Skipped, len(l.Slots))
		}
	}

	if opts.output != "" {
		printSuccess(stdout, "Wrote layout for %s images", StyleNumber.Render(fmt.Sprint(len(l.Placements))))
		printFile(stdout, opts.output)
	}
	return nil
}

// computeLayout resolves config and count flags and places the targets.
func (c *CLI) computeLayout(lf *layoutFlags, cf *countFlags) (wall.Layout, error) {
	cfg, err := c.resolve(lf)
	if err != nil {
		return wall.Layout{}, err
	}
	n, err := cf.targetCount(cfg)
	if err != nil {
		return wall.Layout{}, err
	}
	c.Logger.Debugf("Placing %d images over %d slots", n, len(cfg.SlotList()))
	return cfg.Randomizer(c.Logger).Place(n)
}
