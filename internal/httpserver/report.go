package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/transport"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	rep, err := h.Svc.Summary(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("report_error", "handler", "report.summary", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build report")
	}

	return c.JSON(http.StatusOK, transport.NewReportResponse(rep))
}
