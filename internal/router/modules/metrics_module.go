package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/container"
	"github.com/festify/festify-web/internal/infrastructure/metrics"
	"github.com/festify/festify-web/internal/interface/middleware"
)

// MetricsModule exposes Prometheus metrics. Private addresses skip the limit.
type MetricsModule struct {
	Metrics *metrics.Backend
}

func NewMetricsModule(m *metrics.Backend) *MetricsModule { return &MetricsModule{Metrics: m} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/metrics", rl, gin.WrapH(m.Metrics.Handler()))
}
