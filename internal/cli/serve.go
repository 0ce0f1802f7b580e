package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stickfigures/pkg/config"
	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/server"
	"github.com/matzehuels/stickfigures/pkg/session"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	addr      string
	width     float64
	height    float64
	rotateKey string
}

// serveCommand creates the serve command for the interactive browser session.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <source>",
		Short: "Explore the data as stick figures in the browser",
		Long: `Serve an interactive page with the stick figure plot and the data table.

Click a figure to switch to the next attribute pair; press the rotate key
(default n, case-insensitive) to rotate attribute values. All browser tabs
share one session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}

			coll, err := loadEntities(cmd.Context(), cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), coll, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().Float64Var(&opts.width, "width", config.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", config.DefaultHeight, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.rotateKey, "key", "", "rotate key (overrides config)")

	return cmd
}

// apply overrides cfg with the flags the user set explicitly.
func (o serveOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = o.addr
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = o.height
	}
	if flags.Changed("key") {
		cfg.Input.RotateKey = o.rotateKey
	}
	return cfg.Validate()
}

func (c *CLI) runServe(ctx context.Context, coll entity.Collection, cfg config.Config) error {
	sess, err := session.New(coll, cfg.ScaleCanvas(),
		session.WithRotateKey(cfg.Input.RotateKey),
		session.WithFigureOptions(cfg.FigureOptions()...),
	)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           server.New(sess, server.WithLogger(c.Logger)).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printSuccess("Serving %d figures", len(coll))
	printKeyValue("URL", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("Rotate key", sess.RotateKey())
	printNextStep("Stop with", "ctrl+c")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Debug("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	// A clean shutdown after an interrupt is not an error.
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}
