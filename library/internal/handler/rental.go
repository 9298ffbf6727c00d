package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
)

type rentalOp func(ctx context.Context, who model.Identity, manageID string) (model.Book, error)

func (h *Handler) Rent(c echo.Context) error {
	return h.rental(c, "Rent", h.librarySvc.Rent)
}

func (h *Handler) Extend(c echo.Context) error {
	return h.rental(c, "Extend", h.librarySvc.Extend)
}

func (h *Handler) Return(c echo.Context) error {
	return h.rental(c, "Return", h.librarySvc.Return)
}

func (h *Handler) rental(c echo.Context, name string, op rentalOp) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	manageID := c.Param("manageId")
	book, err := op(c.Request().Context(), who, manageID)
	if err != nil {
		h.log.Info(name,
			zap.String("manageId", manageID),
			zap.String("email", who.ContactEmail()),
			zap.Error(err))
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) MyLoans(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	books, err := h.librarySvc.MyLoans(c.Request().Context(), who)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) ResetRental(c echo.Context) error {
	book, err := h.librarySvc.ResetRental(c.Request().Context(), c.Param("manageId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ResetRentals(c echo.Context) error {
	var req manageIDsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.librarySvc.ResetRentals(c.Request().Context(), req.ManageIDs))
}
