package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradeboard/auth"
	"github.com/rustyeddy/tradeboard/board"
	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/report"
	"github.com/rustyeddy/tradeboard/source"
	"github.com/rustyeddy/tradeboard/trade"
	"go.uber.org/zap"
)

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"opt": func(o metrics.Optional, format string) string {
		if !o.OK {
			return "n/a"
		}
		return fmt.Sprintf(format, o.Value)
	},
	"hours": func(d time.Duration) string { return d.Round(time.Minute).String() },
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// filterFrom reads ?instrument=BTC&instrument=ETH&side=LONG.
func filterFrom(c *gin.Context) (trade.Filter, error) {
	f := trade.Filter{Instruments: c.QueryArray("instrument")}
	if side := c.Query("side"); side != "" {
		s, err := market.LookupSide(side)
		if err != nil {
			return trade.Filter{}, err
		}
		f.Side = s
	}
	return f, nil
}

// status maps a build error onto an HTTP status and a message that is safe
// to show.
func status(err error) (int, string) {
	var fe *source.FetchError
	var ie *trade.IntegrityError
	switch {
	case errors.Is(err, market.ErrUnknownSide):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &fe):
		return http.StatusBadGateway, "could not load the trade sheet, try again later"
	case errors.As(err, &ie):
		return http.StatusUnprocessableEntity, ie.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) build(c *gin.Context) (*board.View, error) {
	f, err := filterFrom(c)
	if err != nil {
		return nil, err
	}
	v, err := s.builder.Build(c.Request.Context(), f)
	if err != nil {
		s.log.Warn("build failed", zap.Error(err))
	}
	return v, err
}

// view is the JSON variant of build; it writes the error response itself.
func (s *Server) view(c *gin.Context) (*board.View, bool) {
	v, err := s.build(c)
	if err != nil {
		code, msg := status(err)
		c.JSON(code, gin.H{"error": msg})
		return nil, false
	}
	return v, true
}

type loginData struct {
	Error string
}

func (s *Server) loginPage(c *gin.Context) {
	if !s.gate.Enabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", loginData{})
}

func (s *Server) login(c *gin.Context) {
	sess, err := s.gate.Login(c.PostForm("passphrase"))
	if errors.Is(err, auth.ErrRejected) {
		s.log.Info("login rejected", zap.String("client_ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "login.html", loginData{Error: "Access denied."})
		return
	}

	if s.gate.Enabled() {
		tok, err := s.tokens.Sign(sess)
		if err != nil {
			s.log.Error("sign session", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "login.html", loginData{Error: "Could not start a session."})
			return
		}
		maxAge := int(time.Until(sess.Expires).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, tok, maxAge, "/", "", s.secure, true)
		s.log.Info("session started", zap.String("session", sess.ID))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(c *gin.Context) {
	if sess, ok := s.session(c); ok {
		s.gate.Sessions().End(sess.ID)
		s.log.Info("session ended", zap.String("session", sess.ID))
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", s.secure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

type dashboardData struct {
	Source   string
	Error    string
	View     *board.View
	Query    template.URL
	Gate     bool
	Selected map[string]bool
}

func (s *Server) dashboard(c *gin.Context) {
	data := dashboardData{
		Source: s.builder.Source(),
		Query:  template.URL(c.Request.URL.RawQuery),
		Gate:   s.gate.Enabled(),
	}

	v, err := s.build(c)
	if err != nil {
		code, msg := status(err)
		data.Error = msg
		c.HTML(code, "dashboard.html", data)
		return
	}

	data.View = v
	data.Selected = make(map[string]bool, len(v.Filter.Instruments))
	for _, in := range v.Filter.Instruments {
		data.Selected[market.Instrument(in)] = true
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (s *Server) apiSummary(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, toSummary(v.Summary))
	}
}

func (s *Server) apiInsights(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, toInsights(v.Insights))
	}
}

func (s *Server) apiDaily(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, toPoints(v.Daily))
	}
}

func (s *Server) apiEquity(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, gin.H{
			"start_capital": v.Summary.StartCapital,
			"points":        toPoints(v.Equity),
		})
	}
}

func (s *Server) apiHistogram(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, toBins(v.Histogram))
	}
}

func (s *Server) apiInstruments(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, gin.H{"instruments": v.Instruments})
	}
}

func (s *Server) apiTrades(c *gin.Context) {
	if v, ok := s.view(c); ok {
		c.JSON(http.StatusOK, toTrades(v.Records))
	}
}

func (s *Server) png(c *gin.Context, render func(io.Writer, *board.View) error) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render(&buf, v); err != nil {
		if errors.Is(err, report.ErrNoData) {
			c.Status(http.StatusNoContent)
			return
		}
		s.log.Error("render chart", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chart failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) equityChart(c *gin.Context) {
	s.png(c, func(w io.Writer, v *board.View) error {
		return report.EquityChart(w, v.Equity, v.Summary.StartCapital)
	})
}

func (s *Server) dailyChart(c *gin.Context) {
	s.png(c, func(w io.Writer, v *board.View) error {
		return report.DailyChart(w, v.Daily)
	})
}

func (s *Server) histogramChart(c *gin.Context) {
	s.png(c, func(w io.Writer, v *board.View) error {
		return report.HistogramChart(w, v.Histogram)
	})
}
