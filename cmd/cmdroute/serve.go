package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cmdroute-dev/cmdroute/internal/config"
	"github.com/cmdroute-dev/cmdroute/pkg/manifest"
	"github.com/cmdroute-dev/cmdroute/pkg/observe"
	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

func serveCmd(configPath *string) *cobra.Command {
	var manifestPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route set over HTTP for debugging",
		Long: `Serve loads the manifest once and exposes it over HTTP:

  GET  /routes    route listing with specificity and summaries
  POST /resolve   resolve {"args": [...]} or {"line": "..."}
  POST /explain   per-route match outcomes for the same body
  GET  /metrics   Prometheus metrics
  GET  /healthz   liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			m, set, err := loadRoutes(cfg, manifestPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			return runServer(cmd.Context(), cfg, m, set)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Route manifest path (overrides config)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}

// resolveRequest is the body accepted by /resolve and /explain.
// Exactly one of Args and Line should be set.
type resolveRequest struct {
	Args []string `json:"args"`
	Line string   `json:"line"`
}

// routeInfo is one entry of the /routes listing.
type routeInfo struct {
	Pattern     string `json:"pattern"`
	Specificity int    `json:"specificity"`
	Summary     string `json:"summary,omitempty"`
}

// explainEntry is one entry of the /explain response.
type explainEntry struct {
	Pattern string `json:"pattern"`
	Viable  bool   `json:"viable"`
	Exact   bool   `json:"exact"`
	Reason  string `json:"reason,omitempty"`
}

func runServer(ctx context.Context, cfg *config.Config, m *manifest.Manifest, set *route.RouteSet) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	observeOpts := []observe.Option{
		observe.WithMetrics(observe.WithNamespace(cfg.Serve.MetricsNamespace)),
	}
	if cfg.Serve.Tracing {
		observeOpts = append(observeOpts, observe.WithTracing())
	}
	resolver := observe.New(set, observeOpts...)

	summaries := m.Summaries()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	r.Get("/routes", func(w http.ResponseWriter, _ *http.Request) {
		routes := set.Routes()
		out := make([]routeInfo, 0, len(routes))
		for _, cr := range routes {
			out = append(out, routeInfo{
				Pattern:     cr.Pattern(),
				Specificity: cr.Specificity(),
				Summary:     summaries[cr.Pattern()],
			})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Post("/resolve", func(w http.ResponseWriter, req *http.Request) {
		in, ok := decodeInput(w, req)
		if !ok {
			return
		}
		res, matched := resolver.Resolve(req.Context(), in)
		if !matched {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no route matched"})
			return
		}
		writeJSON(w, http.StatusOK, resolveOutput{
			Pattern:     res.Route.Pattern(),
			Specificity: res.Route.Specificity(),
			Index:       res.Index,
			Values:      res.Values,
			Lists:       res.Lists,
		})
	})

	r.Post("/explain", func(w http.ResponseWriter, req *http.Request) {
		in, ok := decodeInput(w, req)
		if !ok {
			return
		}
		results := resolver.Explain(in)
		out := make([]explainEntry, 0, len(results))
		for _, mr := range results {
			out = append(out, explainEntry{
				Pattern: mr.Route.Pattern(),
				Viable:  mr.Viable,
				Exact:   mr.Exact,
				Reason:  mr.Reason,
			})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Serve.Addr, "routes", set.Len())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// decodeInput parses a resolveRequest body into a ParsedInput, writing
// the error response itself on failure.
func decodeInput(w http.ResponseWriter, req *http.Request) (route.ParsedInput, bool) {
	var body resolveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return route.ParsedInput{}, false
	}
	args := body.Args
	if body.Line != "" {
		if len(args) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "set either args or line, not both"})
			return route.ParsedInput{}, false
		}
		var err error
		args, err = route.SplitLine(body.Line)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return route.ParsedInput{}, false
		}
	}
	return route.NewInput(args), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Info("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(req.Context()),
			)
		})
	}
}
