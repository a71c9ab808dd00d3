package server

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"YieldSentinel/internal/calculator"
	"YieldSentinel/internal/model"
	"YieldSentinel/internal/store"

	"github.com/gin-gonic/gin"
)

// Server exposes the dashboard page and its JSON API.
type Server struct {
	store         *store.Store
	symbol        string
	sessionsShown int
	engine        *gin.Engine
	page          *template.Template
}

// New creates the gin engine and registers all routes.
func New(st *store.Store, symbol string, sessionsShown int) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		store:         st,
		symbol:        symbol,
		sessionsShown: sessionsShown,
		engine:        engine,
		page:          template.Must(template.New("dashboard").Parse(dashboardHTML)),
	}

	engine.GET("/", s.dashboardPage)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.GET("/sessions", s.getSessions)
		api.GET("/metrics", s.getMetrics)
	}

	return s
}

// Handler returns the HTTP handler for use with http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) dashboardPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(c.Writer, gin.H{"Symbol": s.symbol}); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

type seriesPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	RelativeYield float64   `json:"relative_yield"`
}

type sessionSeries struct {
	SessionDate string        `json:"session_date"`
	Label       string        `json:"label"`
	Points      []seriesPoint `json:"points"`
}

func (s *Server) getSessions(c *gin.Context) {
	limit := s.sessionsShown
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	snap := s.store.Snapshot()
	shown := calculator.LastNSessions(snap.Sessions, limit)

	series := make([]sessionSeries, 0, len(shown))
	for _, sess := range shown {
		points := make([]seriesPoint, 0, len(sess.Observations))
		for _, o := range sess.Observations {
			points = append(points, seriesPoint{
				Timestamp:     o.Timestamp,
				RelativeYield: o.RelativeYield,
			})
		}
		series = append(series, sessionSeries{
			SessionDate: sess.Date.Format("2006-01-02"),
			Label:       sess.Date.Format("02-Jan"),
			Points:      points,
		})
	}

	hourly := make([]seriesPoint, 0, len(snap.HourlyAverage))
	for _, p := range snap.HourlyAverage {
		hourly = append(hourly, seriesPoint{Timestamp: p.Hour, RelativeYield: p.AvgRelativeYield})
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":       series,
		"hourly_average": hourly,
	})
}

func (s *Server) getMetrics(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, metricsResponse(snap.Metrics, snap.RefreshedAt))
}

func metricsResponse(m model.MarketMetrics, refreshedAt time.Time) gin.H {
	return gin.H{
		"current_yield":     m.CurrentYield,
		"latest_at":         m.LatestAt,
		"two_ten_spread":    m.TwoTenSpread,
		"volatility_bps":    m.VolatilityBps,
		"fed_funds_upper":   m.FedFundsUpper,
		"observation_count": m.ObservationCount,
		"session_count":     m.SessionCount,
		"refreshed_at":      refreshedAt,
	}
}
