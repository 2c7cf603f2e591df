package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/dto"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

// DraftHandler exposes pending monthly grid edits.
type DraftHandler struct {
	drafts *service.DraftService
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Open godoc
// @Summary Open a draft for a month view
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body service.Period true "Month view"
// @Success 201 {object} response.Envelope
// @Router /attendance/drafts [post]
func (h *DraftHandler) Open(c *gin.Context) {
	var p service.Period
	if err := bindJSON(c, &p); err != nil {
		response.Error(c, err)
		return
	}
	draft, err := h.drafts.Open(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, draft)
}

// Get godoc
// @Summary Get a draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Patch godoc
// @Summary Apply a draft transition
// @Description action is one of select_period, set_status or cancel.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.DraftPatchRequest true "Transition"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Stale generation"
// @Router /attendance/drafts/{id} [patch]
func (h *DraftHandler) Patch(c *gin.Context) {
	var req dto.DraftPatchRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	var (
		draft *models.MonthlyDraft
		err   error
	)
	switch req.Action {
	case dto.DraftActionSelectPeriod:
		p := service.Period{Class: req.Class, Month: time.Month(req.Month), Year: req.Year}
		draft, err = h.drafts.SelectPeriod(ctx, id, req.Generation, p)
	case dto.DraftActionSetStatus:
		edits := make([]service.CellEdit, 0, len(req.Edits))
		for _, e := range req.Edits {
			edits = append(edits, service.CellEdit{StudentID: e.StudentID, Day: e.Day, Status: e.Status})
		}
		draft, err = h.drafts.SetStatus(ctx, id, service.DraftEditRequest{Generation: req.Generation, Edits: edits})
	case dto.DraftActionCancel:
		draft, err = h.drafts.Cancel(ctx, id, req.Generation)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, "action must be select_period, set_status or cancel")
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Discard godoc
// @Summary Discard a draft
// @Tags Drafts
// @Param id path string true "Draft ID"
// @Success 204
// @Router /attendance/drafts/{id} [delete]
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.drafts.Discard(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Grid godoc
// @Summary Monthly grid with the draft's pending edits applied
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param generation query int false "Generation last seen by the client"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Stale generation"
// @Router /attendance/drafts/{id}/grid [get]
func (h *DraftHandler) Grid(c *gin.Context) {
	generation, err := generationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	grid, err := h.drafts.Grid(c.Request.Context(), c.Param("id"), generation)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Commit godoc
// @Summary Send the draft's pending edits to the store
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param generation query int false "Generation last seen by the client"
// @Success 202 {object} response.Envelope
// @Failure 422 {object} response.Envelope "No pending edits"
// @Router /attendance/drafts/{id}/commit [post]
func (h *DraftHandler) Commit(c *gin.Context) {
	generation, err := generationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.drafts.Commit(c.Request.Context(), c.Param("id"), generation)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}
