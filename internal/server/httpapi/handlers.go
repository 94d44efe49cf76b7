package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type createNoteRequest struct {
	AuthorID string   `json:"authorId" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Phase    string   `json:"phase"`
	Tags     []string `json:"tags"`
}

type postMessageRequest struct {
	SenderID string `json:"senderId" validate:"required"`
	Channel  string `json:"channel" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type clearedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// decode unmarshals and validates a request body into dst.
func (a *API) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json body", common.ErrorValidation)
	}
	if err := a.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, err)
	}
	return nil
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), "list users failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.users.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		a.logger.Warn(r.Context(), "login rejected", "name", req.Name)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:    result.User.ID,
		Name:  result.User.Name,
		Role:  result.User.Role,
		Token: result.Token,
	})
}

func (a *API) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.notes.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), "list notes failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *API) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := a.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := a.notes.Create(r.Context(), req.AuthorID, req.Title, req.Content, req.Phase, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (a *API) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := a.notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearedResponse{Success: true, Message: "Note deleted."})
}

func (a *API) handleChannelHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := a.messages.List(r.Context(), r.PathValue("channel"))
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []*models.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (a *API) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := a.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := a.messages.Append(r.Context(), req.SenderID, req.Channel, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (a *API) handleClearNotes(w http.ResponseWriter, r *http.Request) {
	if err := a.notes.Clear(r.Context()); err != nil {
		a.logger.Error(r.Context(), "clear notes failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearedResponse{Success: true, Message: "All notes cleared."})
}

func (a *API) handleClearChat(w http.ResponseWriter, r *http.Request) {
	if err := a.messages.Clear(r.Context(), ""); err != nil {
		a.logger.Error(r.Context(), "clear chat failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearedResponse{Success: true, Message: "All chat messages cleared."})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
