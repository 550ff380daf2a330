package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradeboard/auth"
	"go.uber.org/zap"
)

const (
	cookieName = "tradeboard_session"
	sessionKey = "session"
)

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// requireSession lets a request through when the gate is open or the cookie
// names a live session.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.gate.Enabled() {
			c.Next()
			return
		}

		sess, ok := s.session(c)
		if !ok {
			if wantsHTML(c) {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrRejected.Error()})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (s *Server) session(c *gin.Context) (*auth.Session, bool) {
	tok, err := c.Cookie(cookieName)
	if err != nil || tok == "" {
		return nil, false
	}
	id, err := s.tokens.Parse(tok)
	if err != nil {
		s.log.Debug("bad session token", zap.Error(err))
		return nil, false
	}
	return s.gate.Sessions().Get(id)
}

func wantsHTML(c *gin.Context) bool {
	p := c.Request.URL.Path
	return !strings.HasPrefix(p, "/api/") && !strings.HasPrefix(p, "/chart/")
}
