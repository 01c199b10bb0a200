package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"saasnotes/internal/common"
	"saasnotes/internal/services"
)

// NoteHandlers handles note CRUD requests. Tenant scoping happens in the
// service and repository layers off the identity placed in the context by
// the auth gate.
type NoteHandlers struct {
	noteService services.NoteService
}

func NewNoteHandlers(noteService services.NoteService) *NoteHandlers {
	return &NoteHandlers{noteService: noteService}
}

// NoteRequest is the create/update payload.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes handles GET /notes
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	notes, err := h.noteService.List(ctx, identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /notes
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Title == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
	}

	note, err := h.noteService.Create(ctx, identity, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, note)
}

// GetNote handles GET /notes/:id
func (h *NoteHandlers) GetNote(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	noteID, err := common.ValidateUUID(c.Param("id"), "note id")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	note, err := h.noteService.Get(ctx, identity, noteID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateNote handles PUT /notes/:id
func (h *NoteHandlers) UpdateNote(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	noteID, err := common.ValidateUUID(c.Param("id"), "note id")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Title == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
	}

	note, err := h.noteService.Update(ctx, identity, noteID, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/:id
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	noteID, err := common.ValidateUUID(c.Param("id"), "note id")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	if err := h.noteService.Delete(ctx, identity, noteID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Note deleted successfully"})
}
