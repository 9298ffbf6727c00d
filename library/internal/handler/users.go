package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/auth"
)

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := auth.GetPrincipal(ctx)
	if err != nil {
		return httpError(errs.ErrUnauthenticated)
	}
	var req model.RegisterRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.librarySvc.Register(ctx, p, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Profile(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	u, err := h.librarySvc.Profile(c.Request().Context(), who)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	var req model.ProfileUpdateRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.librarySvc.UpdateProfile(c.Request().Context(), who, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.librarySvc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) UserAction(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	var req model.UserActionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.librarySvc.UserAction(c.Request().Context(), who, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) PreviewRentalMigration(c echo.Context) error {
	report, err := h.librarySvc.PreviewRentalMigration(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) ApplyRentalMigration(c echo.Context) error {
	report, err := h.librarySvc.ApplyRentalMigration(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
