package handlers

import (
	"net/http"
	"strconv"

	"notes_api/internal/models"
	"notes_api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateNoteRequest is the body of POST /notes.
type CreateNoteRequest struct {
	Title   *string `json:"title" example:"Groceries"`
	Content *string `json:"content" example:"milk, eggs"`
}

// UpdateNoteRequest is the body of PUT /notes/{id}. Omitted fields keep their value.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty" example:"Groceries (weekend)"`
	Content *string `json:"content,omitempty"`
}

// noteID parses the :id path parameter, writing a 422 when it is not an integer.
func noteID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: msgInvalidNoteID})
		return 0, false
	}
	return id, true
}

// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      CreateNoteRequest  true  "Note"
// @Success      201   {object}  models.Note
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /notes [post]
// @Security     BearerAuth
func (h *Handler) createNote(c *gin.Context, user *models.User) {
	var req CreateNoteRequest
	if ok := h.bindJSONOrUnprocessable(c, &req); !ok {
		return
	}

	note, err := h.services.Notes.Create(c.Request.Context(), user, service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.respondError(c, err, "note_create_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// @Summary      List notes
// @Description  Returns only the caller's notes, oldest first.
// @Tags         notes
// @Produce      json
// @Success      200  {array}   models.Note
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /notes [get]
// @Security     BearerAuth
func (h *Handler) listNotes(c *gin.Context, user *models.User) {
	notes, err := h.services.Notes.List(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, err, "note_list_failed", "user_id", user.ID)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

// @Summary      Get note
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  models.Note
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /notes/{id} [get]
// @Security     BearerAuth
func (h *Handler) getNote(c *gin.Context, user *models.User) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	note, err := h.services.Notes.Get(c.Request.Context(), user, id)
	if err != nil {
		h.respondError(c, err, "note_get_failed", "note_id", id, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, note)
}

// @Summary      Update note
// @Description  Partial update: only fields present in the body change.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Note ID"
// @Param        body  body      UpdateNoteRequest  true  "Fields to change"
// @Success      200   {object}  models.Note
// @Failure      403   {object}  errorResponse  "Not authorized to update this note"
// @Failure      404   {object}  errorResponse  "Note not found"
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /notes/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateNote(c *gin.Context, user *models.User) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	var req UpdateNoteRequest
	if ok := h.bindJSONOrUnprocessable(c, &req); !ok {
		return
	}

	note, err := h.services.Notes.Update(c.Request.Context(), user, id, models.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.respondError(c, err, "note_update_failed", "note_id", id, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, note)
}

// @Summary      Delete note
// @Tags         notes
// @Param        id   path      int  true  "Note ID"
// @Success      204
// @Failure      403  {object}  errorResponse  "Not authorized to delete this note"
// @Failure      404  {object}  errorResponse  "Note not found"
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /notes/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteNote(c *gin.Context, user *models.User) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	if err := h.services.Notes.Delete(c.Request.Context(), user, id); err != nil {
		h.respondError(c, err, "note_delete_failed", "note_id", id, "user_id", user.ID)
		return
	}
	c.Status(http.StatusNoContent)
}
