package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/memo-service/internal/api/metrics"
	"github.com/99minutos/memo-service/internal/core/ports"
)

type MemoHandler struct {
	memoService ports.MemoService
}

func NewMemoHandler(memoService ports.MemoService) *MemoHandler {
	return &MemoHandler{memoService: memoService}
}

// Create stores a memo for the logged-in account.
//
// @Summary      Create a memo
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        body  body      memoRequest  true  "Memo fields, both optional"
// @Success      201   {object}  domain.Memo
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /memos [post]
func (h *MemoHandler) Create(c echo.Context) error {
	acc, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req memoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	memo, err := h.memoService.Create(c.Request().Context(), acc, ports.MemoInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}

	metrics.MemoOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, memo)
}

// List renders the account's memos as HTML, or as a JSON array when the
// client asks for application/json.
//
// @Summary      List memos
// @Tags         memos
// @Produce      html
// @Produce      json
// @Success      200   {array}   domain.Memo
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /memos [get]
func (h *MemoHandler) List(c echo.Context) error {
	acc, err := ctxAccount(c)
	if err != nil {
		return err
	}

	memos, err := h.memoService.List(c.Request().Context(), acc)
	if err != nil {
		return err
	}

	metrics.MemoOperationsTotal.WithLabelValues("list").Inc()
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, memos)
	}
	return c.Render(http.StatusOK, "memos.html", memosPage{Account: acc, Memos: memos})
}

// Update overwrites the fields present in the body.
//
// @Summary      Update a memo
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        memo_id  path      int          true  "Memo ID"
// @Param        body     body      memoRequest  true  "Fields to overwrite"
// @Success      200      {object}  domain.Memo
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /memos/{memo_id} [put]
func (h *MemoHandler) Update(c echo.Context) error {
	acc, err := ctxAccount(c)
	if err != nil {
		return err
	}

	id, err := memoID(c)
	if err != nil {
		return err
	}

	var req memoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	memo, err := h.memoService.Update(c.Request().Context(), acc, id, req.patch())
	if err != nil {
		return err
	}

	metrics.MemoOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, memo)
}

// Delete removes one of the account's memos.
//
// @Summary      Delete a memo
// @Tags         memos
// @Produce      json
// @Param        memo_id  path      int  true  "Memo ID"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /memos/{memo_id} [delete]
func (h *MemoHandler) Delete(c echo.Context) error {
	acc, err := ctxAccount(c)
	if err != nil {
		return err
	}

	id, err := memoID(c)
	if err != nil {
		return err
	}

	if err := h.memoService.Delete(c.Request().Context(), acc, id); err != nil {
		return err
	}

	metrics.MemoOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Memo deleted successfully"})
}

func memoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("memo_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid memo id")
	}
	return id, nil
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
