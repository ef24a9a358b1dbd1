// Package ui serves the analyst dashboard: the rendered risk report and
// per-dimension aggregate tables.
package ui

import (
	"html/template"
	"net/http"

	"riskbook/internal"
	"riskbook/internal/api"
	"riskbook/internal/report"

	"github.com/gin-gonic/gin"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<title>riskbook</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f4f4f4; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>`))

// Server renders the dashboard over precomputed analysis state
type Server struct {
	engine  *gin.Engine
	state   *api.State
	builder *report.Builder
	logger  *internal.Logger
}

// NewServer creates the dashboard server. ginMode is "debug" or "release".
func NewServer(state *api.State, ginMode string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	s := &Server{
		engine:  gin.New(),
		state:   state,
		builder: report.NewBuilder(),
		logger:  logger,
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/", s.handleReport)
	s.engine.GET("/health", s.handleHealth)
	return s
}

// Run starts the dashboard on addr
func (s *Server) Run(addr string) error {
	s.logger.Info("dashboard listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleReport(c *gin.Context) {
	md := s.builder.BuildMarkdown(&report.Input{
		SourceFile: s.state.Report.SourceFile,
		Overall:    s.state.Report.Overall,
		Tables:     s.state.Report.Tables,
		Profile:    s.state.Report.Profile,
		Sweep:      s.state.Sweep,
		TopN:       15,
	})
	body := s.builder.RenderHTML(md)

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(c.Writer, gin.H{"Body": template.HTML(body)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"run_id":  s.state.RunID.String(),
		"records": s.state.Report.Overall.RecordCount,
	})
}
