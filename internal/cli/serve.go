package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photowall/internal/server"
)

const shutdownTimeout = 5 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	layoutFlags
	addr string // listen address
}

// serveCommand creates the serve command, which hands out the page with a
// new layout on every request.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: "127.0.0.1:8080"}

	cmd := &cobra.Command{
		Use:   "serve [page.html]",
		Short: "Serve an HTML page with a fresh layout per request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, page string, opts *serveOpts) error {
	cfg, err := c.resolve(&opts.layoutFlags)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(page)
	if err != nil {
		return fmt.Errorf("read %s: %w", page, err)
	}

	s, err := server.New(data, cfg.Selector, cfg.Randomizer(c.Logger), c.Logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Serving %s on http://%s", page, opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
