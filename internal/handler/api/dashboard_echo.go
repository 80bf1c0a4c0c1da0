package api

import (
	"bytes"
	"context"
	"net/http"

	models "GoldBrief/internal/domain/models"
	"GoldBrief/internal/usecase"
	xhttp "GoldBrief/pkg/http"
	xlogger "GoldBrief/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SnapshotProvider runs the market data pipeline.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) models.Snapshot
	News(ctx context.Context) []models.NewsItem
}

// DigestRunner builds and optionally sends the digest.
type DigestRunner interface {
	Run(ctx context.Context, dryRun bool) (models.Digest, []usecase.Delivery)
}

// DashboardEchoHandler serves the HTML dashboard and its JSON API.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	data   SnapshotProvider
	digest DigestRunner
}

func NewDashboardEchoHandler(logger *xlogger.Logger, data SnapshotProvider, digest DigestRunner) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, data: data, digest: digest}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/snapshot", h.Snapshot)
	g.GET("/outlook", h.Outlook)
	g.GET("/news", h.News)
	g.POST("/digest", h.Digest)
}

// Page renders the dashboard. Every request runs a fresh pipeline.
func (h *DashboardEchoHandler) Page(c echo.Context) error {
	snap := h.data.Snapshot(c.Request().Context())

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, newPageData(snap)); err != nil {
		h.logger.Error("render dashboard", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *DashboardEchoHandler) Snapshot(c echo.Context) error {
	snap := h.data.Snapshot(c.Request().Context())
	return xhttp.SuccessResponse(c, models.NewSnapshotView(snap))
}

func (h *DashboardEchoHandler) Outlook(c echo.Context) error {
	snap := h.data.Snapshot(c.Request().Context())
	return xhttp.SuccessResponse(c, snap.Outlook)
}

func (h *DashboardEchoHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	items := h.data.News(c.Request().Context())
	if len(items) > req.Limit {
		items = items[:req.Limit]
	}
	return xhttp.SuccessResponse(c, items)
}

type digestResponse struct {
	Text       string              `json:"text"`
	DryRun     bool                `json:"dry_run"`
	Deliveries []usecase.Delivery  `json:"deliveries"`
	Snapshot   models.SnapshotView `json:"snapshot"`
}

func (h *DashboardEchoHandler) Digest(c echo.Context) error {
	req := &models.DigestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, deliveries := h.digest.Run(c.Request().Context(), req.DryRun)
	if deliveries == nil {
		deliveries = []usecase.Delivery{}
	}
	return xhttp.SuccessResponse(c, digestResponse{
		Text:       d.Text,
		DryRun:     req.DryRun,
		Deliveries: deliveries,
		Snapshot:   models.NewSnapshotView(d.Snapshot),
	})
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
