package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/adam-huganir/yutc-diagram/pkg/buildinfo"
	"github.com/adam-huganir/yutc-diagram/pkg/errors"
	dagio "github.com/adam-huganir/yutc-diagram/pkg/io"
	"github.com/adam-huganir/yutc-diagram/pkg/render"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
	renderTimeout   = 30 * time.Second
)

// contentTypes maps each served format to its media type.
var contentTypes = map[string]string{
	render.FormatPNG: "image/png",
	render.FormatSVG: "image/svg+xml",
	render.FormatJPG: "image/jpeg",
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	formatJSON:       "application/json",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		opts renderOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the diagram over HTTP",
		Long: `Serve the diagram for previewing in a browser.

Endpoints:
  GET /diagram.{png,svg,jpg,dot}   the rendered diagram
  GET /graph.json                  the graph as JSON
  GET /healthz                     liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := opts.withDefaults(c.cfg)
			if err := o.validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), addr, o)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	opts.addFlags(cmd.Flags())

	return cmd
}

// runServe listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, out io.Writer, addr string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "listen on %s", addr)
	}

	srv := &http.Server{
		Handler:           c.newRouter(logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	url := "http://" + ln.Addr().String()
	printSuccess(out, "Serving %s", StyleHighlight.Render(url))
	logger.Infof("Open %s/diagram.svg to preview", url)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	logger.Info("Server stopped")
	return nil
}

// newRouter builds the HTTP routes. Every request renders through the same
// cache as the render command.
func (c *CLI) newRouter(logger *log.Logger, opts renderOpts) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(middleware.Timeout(renderTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok " + buildinfo.Version + "\n"))
	})

	r.Get("/graph.json", func(w http.ResponseWriter, r *http.Request) {
		g, err := c.loadGraph(opts.graphFile)
		if err != nil {
			writeError(w, err)
			return
		}
		var buf bytes.Buffer
		if err := dagio.WriteJSON(g, &buf); err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypes[formatJSON])
		_, _ = w.Write(buf.Bytes())
	})

	r.Get("/diagram.{format}", func(w http.ResponseWriter, r *http.Request) {
		o := opts
		o.format = chi.URLParam(r, "format")
		if err := render.ValidateFormat(o.format); err != nil {
			writeError(w, err)
			return
		}

		ctx := withLogger(r.Context(), logger)
		g, err := c.loadGraph(o.graphFile)
		if err != nil {
			writeError(w, err)
			return
		}
		data, cached, err := c.renderGraph(ctx, g, o)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypes[o.format])
		if cached {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(data)
	})

	return r
}

// requestLogger logs one debug line per request with status and duration.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

// writeError maps coded errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidBackend:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeToolkitNotFound:
		status = http.StatusServiceUnavailable
	}
	http.Error(w, errors.UserMessage(err), status)
}
