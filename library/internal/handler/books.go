package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
)

type bulkBooksRequest struct {
	Books []model.CreateBookRequest `json:"books" validate:"required,min=1,dive"`
}

type manageIDsRequest struct {
	ManageIDs []string `json:"manageIds" validate:"required,min=1,dive,required"`
}

func (h *Handler) ListBooks(c echo.Context) error {
	var filter model.ListBooksFilter
	switch status := c.QueryParam("status"); status {
	case "":
	case "available":
		filter.OnlyAvailable = true
	case "rented":
		filter.OnlyRented = true
	default:
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("status is invalid"))
	}
	books, err := h.librarySvc.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.librarySvc.GetBook(c.Request().Context(), c.Param("manageId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), c.Param("manageId"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.librarySvc.DeleteBook(c.Request().Context(), c.Param("manageId")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteBooks(c echo.Context) error {
	var req manageIDsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.librarySvc.DeleteBooks(c.Request().Context(), req.ManageIDs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}

func (h *Handler) InsertBooks(c echo.Context) error {
	var req bulkBooksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	books, err := h.librarySvc.InsertBooks(c.Request().Context(), req.Books)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, books)
}

func (h *Handler) ReplaceBooks(c echo.Context) error {
	var req bulkBooksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	books, err := h.librarySvc.ReplaceBooks(c.Request().Context(), req.Books)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}
