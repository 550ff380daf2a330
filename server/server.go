// Package server serves the dashboard over HTTP behind the passphrase gate.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradeboard/auth"
	"github.com/rustyeddy/tradeboard/board"
	"github.com/rustyeddy/tradeboard/config"
	"github.com/rustyeddy/tradeboard/trade"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

// Builder produces a fresh view per request. *board.Pipeline implements it.
type Builder interface {
	Build(ctx context.Context, filter trade.Filter) (*board.View, error)
	Source() string
}

// Server is the dashboard HTTP server.
type Server struct {
	builder Builder
	gate    *auth.Gate
	tokens  *auth.Tokens
	log     *zap.Logger
	limiter *rate.Limiter
	engine  *gin.Engine
	secure  bool
}

// Options tunes a Server.
type Options struct {
	RateLimit    float64 // requests per second, 0 disables
	Burst        int
	SecureCookie bool
}

// OptionsFrom reads the server section of the config.
func OptionsFrom(c config.ServerConfig) Options {
	return Options{RateLimit: c.RateLimit, Burst: c.Burst}
}

// New wires the routes. tokens may only be nil when the gate is open.
func New(b Builder, gate *auth.Gate, tokens *auth.Tokens, opts Options, log *zap.Logger) (*Server, error) {
	if gate == nil {
		gate = auth.NewGate("", nil)
	}
	if gate.Enabled() && tokens == nil {
		return nil, errors.New("a session secret is required when a passphrase is set")
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		builder: b,
		gate:    gate,
		tokens:  tokens,
		log:     log,
		secure:  opts.SecureCookie,
	}
	if opts.RateLimit > 0 {
		burst := max(opts.Burst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), s.logRequests(), s.rateLimit())
	s.routes(r)
	s.engine = r
	return s, nil
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/login", s.loginPage)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)

	private := r.Group("/", s.requireSession())
	private.GET("/", s.dashboard)

	api := private.Group("/api")
	api.GET("/summary", s.apiSummary)
	api.GET("/insights", s.apiInsights)
	api.GET("/daily", s.apiDaily)
	api.GET("/equity", s.apiEquity)
	api.GET("/histogram", s.apiHistogram)
	api.GET("/instruments", s.apiInstruments)
	api.GET("/trades", s.apiTrades)

	charts := private.Group("/chart")
	charts.GET("/equity.png", s.equityChart)
	charts.GET("/daily.png", s.dailyChart)
	charts.GET("/histogram.png", s.histogramChart)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", zap.String("addr", addr), zap.Bool("gate", s.gate.Enabled()))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdown)
}
