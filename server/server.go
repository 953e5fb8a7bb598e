// Package server exposes the ephemeris over HTTP with gin.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/chart"
	"github.com/wippyai/swisseph-wasm/config"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/sweph"
)

// Ephemeris is the part of *sweph.SwissEph the server calls.
type Ephemeris interface {
	chart.Ephemeris
	FixStar2UT(ctx context.Context, star string, jdUT float64, flags swisseph.CalcFlag) (*sweph.StarPosition, error)
	RiseTrans(ctx context.Context, jdUT float64, body swisseph.Body, star string, epheFlags swisseph.CalcFlag, event swisseph.RiseFlag, geo sweph.GeoPos, pressure, temperature float64) (*sweph.RiseTransit, error)
	PlanetName(ctx context.Context, body swisseph.Body) (string, error)
}

// Server serializes every request onto one ephemeris handle, since the
// module keeps global state.
type Server struct {
	mu     sync.Mutex
	swe    Ephemeris
	log    *zap.Logger
	router *gin.Engine
}

type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New builds the router. mode is a gin mode; empty keeps gin's current one.
func New(swe Ephemeris, mode string, opts ...Option) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	s := &Server{swe: swe, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	r.GET("/health", s.health)
	api := r.Group("/api")
	{
		api.GET("/version", s.version)
		api.GET("/julday", s.julday)
		api.GET("/calc", s.calc)
		api.GET("/fixstar", s.fixstar)
		api.GET("/houses", s.houses)
		api.GET("/rise", s.rise)
		api.GET("/chart", s.chart)
	}
	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("took", time.Since(start)))
}

// fail maps an error to a response: native failures are 422 with the
// library's diagnostic, bad input 400.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}

	var e *errors.Error
	if stderrors.As(err, &e) {
		switch e.Kind {
		case errors.KindNative:
			status = http.StatusUnprocessableEntity
			body = gin.H{"error": e.Detail, "func": e.Func, "status": e.Code}
		case errors.KindInvalidInput, errors.KindNotFound:
			status = http.StatusBadRequest
		case errors.KindClosed:
			status = http.StatusServiceUnavailable
		}
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, body)
}

func (s *Server) badQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) version(c *gin.Context) {
	s.mu.Lock()
	v, err := s.swe.Version(c.Request.Context())
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": v})
}

type julDayQuery struct {
	Year     *int    `form:"year" binding:"required"`
	Month    int     `form:"month" binding:"required,min=1,max=12"`
	Day      int     `form:"day" binding:"required,min=1,max=31"`
	Hour     float64 `form:"hour" binding:"min=0,max=24"`
	Calendar string  `form:"cal" binding:"omitempty,oneof=g j"`
}

func (s *Server) julday(c *gin.Context) {
	var q julDayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}
	cal := swisseph.GregCal
	if q.Calendar == "j" {
		cal = swisseph.JulCal
	}

	s.mu.Lock()
	jd, err := s.swe.JulDay(c.Request.Context(), *q.Year, q.Month, q.Day, q.Hour, cal)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jd": jd})
}

// Pointer fields tell an explicit zero from an absent parameter: jd=0 is
// a valid date and flags=0 a valid flag set.
type calcQuery struct {
	JD    *float64 `form:"jd" binding:"required"`
	Body  string   `form:"body" binding:"required"`
	Flags *int32   `form:"flags"`
}

// parseBody accepts a name such as "mars" or a body number.
func parseBody(s string) (swisseph.Body, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return swisseph.Body(n), nil
	}
	return config.ParseBody(s)
}

// flagsOr returns the chart flags when the request named none.
func flagsOr(f *int32) swisseph.CalcFlag {
	if f == nil {
		return chart.Flags
	}
	return swisseph.CalcFlag(*f)
}

func (s *Server) calc(c *gin.Context) {
	var q calcQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}
	body, err := parseBody(q.Body)
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	s.mu.Lock()
	pos, err := s.swe.CalcUT(ctx, *q.JD, body, flagsOr(q.Flags))
	var name string
	if err == nil {
		name, err = s.swe.PlanetName(ctx, body)
	}
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, positionOf(name, *pos))
}

type fixstarQuery struct {
	Star  string   `form:"star" binding:"required"`
	JD    *float64 `form:"jd" binding:"required"`
	Flags *int32   `form:"flags"`
}

func (s *Server) fixstar(c *gin.Context) {
	var q fixstarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}

	s.mu.Lock()
	star, err := s.swe.FixStar2UT(c.Request.Context(), q.Star, *q.JD, flagsOr(q.Flags))
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	if star == nil {
		s.notFound(c, "star "+q.Star+" not found")
		return
	}
	resp := positionOf(q.Star, star.Position)
	resp.StarName = star.Name
	c.JSON(http.StatusOK, resp)
}

type housesQuery struct {
	JD     *float64 `form:"jd" binding:"required"`
	Lat    float64  `form:"lat" binding:"min=-90,max=90"`
	Lon    float64  `form:"lon" binding:"min=-180,max=180"`
	System string   `form:"hsys" binding:"omitempty,len=1"`
}

func houseSystem(s string) swisseph.HouseSystem {
	if s == "" {
		return swisseph.HousePlacidus
	}
	return swisseph.HouseSystem(s[0])
}

func (s *Server) houses(c *gin.Context) {
	var q housesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}
	hsys := houseSystem(q.System)

	s.mu.Lock()
	h, err := s.swe.Houses(c.Request.Context(), *q.JD, q.Lat, q.Lon, hsys)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Houses{
		System:    string(rune(hsys)),
		Cusps:     h.Cusps,
		Ascendant: h.Points.Asc,
		Midheaven: h.Points.MC,
		ARMC:      h.Points.ARMC,
		Vertex:    h.Points.Vertex,
	})
}

type riseQuery struct {
	JD    *float64 `form:"jd" binding:"required"`
	Body  string   `form:"body"`
	Star  string   `form:"star"`
	Lat   float64  `form:"lat" binding:"min=-90,max=90"`
	Lon   float64  `form:"lon" binding:"min=-180,max=180"`
	Alt   float64  `form:"alt"`
	Event string   `form:"event" binding:"omitempty,oneof=rise set upper lower"`
}

var riseEvents = map[string]swisseph.RiseFlag{
	"":      swisseph.CalcRise,
	"rise":  swisseph.CalcRise,
	"set":   swisseph.CalcSet,
	"upper": swisseph.CalcMTransit,
	"lower": swisseph.CalcITransit,
}

func (s *Server) rise(c *gin.Context) {
	var q riseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}
	if q.Body == "" && q.Star == "" {
		s.badQuery(c, errors.InvalidInput(errors.PhaseEncode, "body or star is required"))
		return
	}
	var body swisseph.Body
	if q.Star == "" {
		var err error
		if body, err = parseBody(q.Body); err != nil {
			s.fail(c, err)
			return
		}
	}
	event := riseEvents[q.Event]
	geo := sweph.GeoPos{Lon: q.Lon, Lat: q.Lat, Alt: q.Alt}

	s.mu.Lock()
	rt, err := s.swe.RiseTrans(c.Request.Context(), *q.JD, body, q.Star, swisseph.FlagSwiEph, event, geo, 0, 0)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	if rt == nil {
		s.notFound(c, "no such event: the body is circumpolar or never rises")
		return
	}

	name := q.Star
	if name == "" {
		name = q.Body
	}
	eventName := q.Event
	if eventName == "" {
		eventName = "rise"
	}
	c.JSON(http.StatusOK, RiseTransit{
		Body:  name,
		Event: eventName,
		JD:    rt.Time,
		Time:  sweph.TimeOf(rt.Time).Format(time.RFC3339),
	})
}

type chartQuery struct {
	Date   string  `form:"date" binding:"required"`
	Lat    float64 `form:"lat" binding:"min=-90,max=90"`
	Lon    float64 `form:"lon" binding:"min=-180,max=180"`
	System string  `form:"hsys" binding:"omitempty,len=1"`
}

func (s *Server) chart(c *gin.Context) {
	var q chartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badQuery(c, err)
		return
	}
	at, err := time.Parse(time.RFC3339, q.Date)
	if err != nil {
		s.badQuery(c, errors.ParseFailed("date", err))
		return
	}

	in := chart.Input{Time: at, Latitude: q.Lat, Longitude: q.Lon, HouseSystem: houseSystem(q.System)}
	s.mu.Lock()
	ch, err := chart.Compute(c.Request.Context(), s.swe, in)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chartOf(ch))
}
