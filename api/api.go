package api

import (
	"embed"
	"errors"
	"etfsim/internal/domain"
	"etfsim/internal/logger"
	"etfsim/internal/service"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type ApiHandler struct {
	SimulationService service.SimulationService
	Logger            *zap.SugaredLogger
	// bounds the upstream fetch of a single simulation
	UpstreamTimeout time.Duration
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.SetHTMLTemplate(template.Must(
		template.New("").ParseFS(templateFS, "templates/*.html"),
	))

	router.GET("/", m.dashboard)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/chart.png", m.chart)
	router.GET("/export.csv", m.exportCsv)

	api := router.Group("/api")
	{
		api.GET("/etfs", m.listEtfs)
		api.POST("/simulate", m.simulate)
	}

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// statusForError maps the simulation error taxonomy onto http codes
func statusForError(err error) int {
	var upstreamErr *domain.UpstreamFetchError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptySeries):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotComputable):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "error", err.Error(), "status", code)
	} else {
		log.Infow("request rejected", "error", err.Error(), "status", code)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := m.Logger
	if log == nil {
		log = zap.S()
	}
	log = log.With("requestID", requestID.String())

	profile := domain.NewPerformanceProfile()
	ctx := logger.NewContext(c.Request.Context(), log)
	ctx = domain.WithPerformanceProfile(ctx, profile)
	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Request-ID", requestID.String())

	c.Next()

	profile.End()
	fields := []interface{}{
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", profile.TotalMs,
	}
	if profileJson, err := profile.ToJsonBytes(); err == nil {
		fields = append(fields, "profile", string(profileJson))
	}
	log.Infow("handled request", fields...)
}
