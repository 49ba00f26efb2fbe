// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/config"
	"github.com/mlnoga/skytexture/internal/ops"
	"github.com/mlnoga/skytexture/internal/stats"
	"github.com/mlnoga/skytexture/internal/texture"
	"github.com/mlnoga/skytexture/web"
)

// Serves textures rendered from one catalog over HTTP. The catalog is read once
// and shared by all requests
type Server struct {
	cfg config.Config
	ctx *ops.Context
	src catalog.Source

	raster chan struct{} // one canvas at a time

	once   sync.Once
	recs   []catalog.Record
	catRep catalog.Report
	err    error
}

func NewServer(cfg config.Config, oc *ops.Context, src catalog.Source) *Server {
	return &Server{cfg: cfg, ctx: oc, src: src, raster: make(chan struct{}, 1)}
}

// Reads the catalog unless already done
func (s *Server) Load() error {
	s.once.Do(func() {
		s.recs, s.catRep, s.err = s.src.Records()
		if s.err != nil {
			s.err = fmt.Errorf("reading catalog: %w", s.err)
			return
		}
		s.ctx.Log.Info().Int("records", len(s.recs)).Int("skipped", s.catRep.Skipped).Msg("catalog loaded")
	})
	return s.err
}

// Returns the HTTP handler with all routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	r.GET("/", getIndex)
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/render", s.postRender)
			v1.GET("/stats", s.getStats)
		}
	}
	return r
}

// Listens and serves on the configured address until the listener fails
func (s *Server) Serve() error {
	if err := s.Load(); err != nil {
		return err
	}
	s.ctx.Log.Info().Str("listen", s.cfg.Listen).Msg("serving")
	return s.Router().Run(s.cfg.Listen)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.ctx.Log.Info().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}

func getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// Parameters of a render request. Unset fields keep the server configuration.
// Scale may not exceed the configured scale
type postRenderArgs struct {
	Gamma      *float64 `json:"gamma"`
	Brightness *float64 `json:"brightness"`
	Scale      *float64 `json:"scale"`
	Format     string   `json:"format"`
	Quality    int      `json:"quality"`
	ColorModel string   `json:"colorModel"`
	Background string   `json:"background"`
}

// Applies the arguments to a copy of the server configuration
func (a *postRenderArgs) apply(base config.Config) (config.Config, config.Variant, error) {
	cfg := base
	v := cfg.Variants()[0]
	if a.Gamma != nil {
		v.Gamma = *a.Gamma
	}
	if a.Brightness != nil {
		v.Brightness = *a.Brightness
	}
	cfg.Gammas, cfg.Brightnesses, cfg.Out = []float64{v.Gamma}, []float64{v.Brightness}, ""
	if a.Scale != nil {
		if *a.Scale > base.Scale {
			return cfg, v, fmt.Errorf("scale %g exceeds the service maximum of %g", *a.Scale, base.Scale)
		}
		cfg.Scale = *a.Scale
	}
	if a.Format != "" {
		cfg.Format = strings.ToLower(a.Format)
	}
	if a.Quality != 0 {
		cfg.Quality = a.Quality
	}
	if a.ColorModel != "" {
		cfg.ColorModel = a.ColorModel
	}
	if a.Background != "" {
		cfg.Background = a.Background
	}
	return cfg, v, cfg.Validate()
}

func (s *Server) postRender(c *gin.Context) {
	var args postRenderArgs
	if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, v, err := args.apply(s.cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Load(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	comp, err := cfg.Compositor(s.ctx, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	scene, rep, err := comp.Compose(ctx, s.recs)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	rep.Catalog, rep.ParseFailure = s.catRep, s.catRep.Skipped

	format, err := texture.FormatFromName("texture." + cfg.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if format == texture.FormatSVG {
		err = scene.WriteSVG(&buf)
	} else {
		select {
		case s.raster <- struct{}{}:
		case <-ctx.Done():
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": ctx.Err().Error()})
			return
		}
		img, rerr := comp.Rasterize(ctx, scene)
		if rerr == nil {
			err = texture.Encode(&buf, img, format, cfg.Quality)
		}
		<-s.raster
		if rerr != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": rerr.Error()})
			return
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Stars", strconv.Itoa(rep.Stars))
	c.Header("X-Dropped", strconv.Itoa(rep.Dropped()))
	c.Data(http.StatusOK, texture.ContentType(format), buf.Bytes())
}

func (s *Server) getStats(c *gin.Context) {
	if err := s.Load(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	comp, err := s.cfg.Compositor(s.ctx, s.cfg.Variants()[0])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	_, rep, err := comp.Compose(c.Request.Context(), s.recs)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	rep.Catalog, rep.ParseFailure = s.catRep, s.catRep.Skipped

	st, err := stats.OfCatalog(s.recs, stats.DefaultBins)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "report": rep})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": rep, "catalog": st})
}
