package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// BoardHandler handles board endpoints.
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoardRequest represents a board creation request.
type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// ListBoards godoc
// @Summary List the caller's boards, newest first
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Board
// @Failure 401 {object} errors.ErrorResponse
// @Router /boards [get]
func (h *BoardHandler) ListBoards(c echo.Context) error {
	boards, err := h.boardService.ListBoards(c.Request().Context(), callerID(c))
	if err != nil {
		return h.fail(c, err, "list boards")
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoard godoc
// @Summary Get one board with its tasks
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Success 200 {object} model.Board
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [get]
func (h *BoardHandler) GetBoard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	board, err := h.boardService.GetBoard(c.Request().Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, err, "get board")
	}
	return c.JSON(http.StatusOK, board)
}

// CreateBoard godoc
// @Summary Create a board owned by the caller
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBoardRequest true "Board data"
// @Success 201 {object} model.Board
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /boards [post]
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	var req CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.NewInvalidInput("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return httpError(apperrors.NewInvalidInput(err.Error()))
	}

	board, err := h.boardService.CreateBoard(c.Request().Context(), callerID(c), &model.Board{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.fail(c, err, "create board")
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/boards/%d", board.ID))
	return c.JSON(http.StatusCreated, board)
}

// UpdateBoard godoc
// @Summary Replace a board
// @Tags boards
// @Accept json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Param request body model.Board true "Board state"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [put]
func (h *BoardHandler) UpdateBoard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	var board model.Board
	if err := c.Bind(&board); err != nil {
		return httpError(apperrors.NewInvalidInput("invalid request body"))
	}

	if err := h.boardService.UpdateBoard(c.Request().Context(), callerID(c), id, &board); err != nil {
		return h.fail(c, err, "update board")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteBoard godoc
// @Summary Delete a board and all of its tasks
// @Tags boards
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.boardService.DeleteBoard(c.Request().Context(), callerID(c), id); err != nil {
		return h.fail(c, err, "delete board")
	}
	return c.NoContent(http.StatusNoContent)
}

// fail logs unexpected errors with full detail and maps everything to the
// client-facing taxonomy.
func (h *BoardHandler) fail(c echo.Context, err error, op string) error {
	he := apperrors.MapToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		log.WithError(err).WithField("op", op).Error("board operation failed")
	}
	return echo.NewHTTPError(he.StatusCode, he.ToResponse())
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewInvalidInput("invalid id")
	}
	return uint(id), nil
}
