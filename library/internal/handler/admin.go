package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/sheet"
)

const (
	mimeCSV       = "text/csv"
	importFormKey = "file"
)

// readRows accepts a multipart CSV upload, a raw CSV body or a JSON array.
func (h *Handler) readRows(c echo.Context) ([]model.ImportRow, error) {
	loc := h.librarySvc.Location()
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		fh, err := c.FormFile(importFormKey)
		if err != nil {
			return nil, errs.Wrap(errs.ErrValidation, "csv file is required", err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errs.Wrap(errs.ErrValidation, "open upload", err)
		}
		defer f.Close()
		return sheet.ReadRows(f, loc)
	case strings.HasPrefix(ctype, mimeCSV):
		return sheet.ReadRows(c.Request().Body, loc)
	default:
		var rows []model.ImportRow
		if err := json.NewDecoder(c.Request().Body).Decode(&rows); err != nil {
			return nil, errs.Wrap(errs.ErrValidation, "decode rows", err)
		}
		return rows, nil
	}
}

func (h *Handler) PlanImport(c echo.Context) error {
	rows, err := h.readRows(c)
	if err != nil {
		return httpError(err)
	}
	plan, err := h.librarySvc.PlanImport(c.Request().Context(), rows)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) ImportBooks(c echo.Context) error {
	rows, err := h.readRows(c)
	if err != nil {
		return httpError(err)
	}
	report, err := h.librarySvc.ImportBooks(c.Request().Context(), rows)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportBooks(c echo.Context) error {
	rows, err := h.librarySvc.ExportBooks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	name := sheet.FileName(time.Now().In(h.librarySvc.Location()))
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, mimeCSV+"; charset=utf-8")
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	resp.WriteHeader(http.StatusOK)
	if err = sheet.WriteBooks(resp, rows); err != nil {
		h.log.Error("WriteBooks", zap.Error(err))
		return errors.Wrap(err, "write csv")
	}
	return nil
}

func (h *Handler) CheckOverdue(c echo.Context) error {
	report, err := h.librarySvc.CheckOverdue(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) SendOverdueNotices(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	var req model.SendNoticesRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.extendWriteDeadline(c, h.noticeTimeout)
	report, err := h.librarySvc.SendOverdueNotices(c.Request().Context(), who, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// extendWriteDeadline moves the connection write deadline d into the future.
// Writers without deadline support are left as they are.
func (h *Handler) extendWriteDeadline(c echo.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	rc := http.NewResponseController(c.Response())
	if err := rc.SetWriteDeadline(time.Now().Add(d)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.Warn("SetWriteDeadline", zap.Error(err))
	}
}

func (h *Handler) SendTestEmail(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	report, err := h.librarySvc.SendTestEmail(c.Request().Context(), who)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.librarySvc.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
