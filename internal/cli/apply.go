package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/htmldoc"
	layoutio "github.com/matzehuels/photowall/pkg/io"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	layoutFlags
	output     string // output file, "-" for stdout
	inPlace    bool   // overwrite the input file
	layoutPath string // also save the computed layout as JSON
}

// applyCommand creates the apply command, which rewrites the image styles of
// an HTML page the way the scatter script would on page load.
func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply [page.html]",
		Short: "Scatter the images of an HTML page",
		Long: `Apply a fresh wall layout to every image of an HTML page.

Each image gets an inline style with a rotation and absolute top/left offsets.
Reads from stdin when the page is "-" and writes to stdout unless --output or
--in-place is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.inPlace && opts.output != "" {
				return errors.New(errors.ErrCodeInvalidInput, "--in-place and --output are mutually exclusive")
			}
			if opts.inPlace && args[0] == "-" {
				return errors.New(errors.ErrCodeInvalidInput, "--in-place needs a file, not stdin")
			}
			return c.runApply(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "overwrite the input file")
	cmd.Flags().StringVar(&opts.layoutPath, "save-layout", "", "also write the computed layout as JSON")

	return cmd
}

func (c *CLI) runApply(stdin io.Reader, stdout io.Writer, input string, opts *applyOpts) error {
	prog := newProgress(c.Logger)

	cfg, err := c.resolve(&opts.layoutFlags)
	if err != nil {
		return err
	}

	doc, err := readDocument(stdin, input)
	if err != nil {
		return err
	}

	l, err := htmldoc.Apply(doc, cfg.Selector, cfg.Randomizer(c.Logger))
	if err != nil {
		return err
	}
	if l.Empty() {
		c.Logger.Warnf("No <%s> elements in %s, page left unchanged", cfg.Selector, input)
	}
	if l.Skipped > 0 {
		c.Logger.Warnf("%d images left in place: only %d slots", l.Skipped, len(l.Slots))
	}

	if opts.layoutPath != "" {
		if err := layoutio.ExportJSON(l, opts.layoutPath); err != nil {
			return err
		}
		c.Logger.Infof("Saved layout to %s", opts.layoutPath)
	}

	output := opts.output
	if opts.inPlace {
		output = input
	}
	if err := writeDocument(stdout, output, doc); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Placed %d images", len(l.Placements)))
	return nil
}

func readDocument(stdin io.Reader, path string) (*htmldoc.Document, error) {
	if path == "-" {
		return htmldoc.Parse(stdin)
	}
	return htmldoc.Load(path)
}

// writeDocument renders doc to path, or to stdout when path is empty or "-".
// The file is only replaced once rendering succeeded.
func writeDocument(stdout io.Writer, path string, doc *htmldoc.Document) error {
	if path == "" || path == "-" {
		return doc.Render(stdout)
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
