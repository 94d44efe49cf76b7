package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/services"
)

type fakeUserService struct {
	users []*models.User
}

func (f *fakeUserService) Login(_ context.Context, name, password string) (*services.LoginResult, error) {
	if name == "Sarthak" && password == "pass123" {
		return &services.LoginResult{
			User:  &models.User{ID: "u-1", Name: "Sarthak", Role: models.RoleGenomics},
			Token: "signed-token",
		}, nil
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeUserService) List(_ context.Context) ([]*models.User, error) {
	return f.users, nil
}

type fakeNoteService struct {
	notes   []*models.Note
	cleared bool
}

func (f *fakeNoteService) Create(_ context.Context, authorID, title, content, phase string, tags []string) (*models.Note, error) {
	if authorID == "" || title == "" || content == "" {
		return nil, fmt.Errorf("%w: authorId, title and content are required", common.ErrorValidation)
	}
	if phase == "" {
		phase = models.PhaseGeneral
	}
	note := &models.Note{
		ID:      fmt.Sprintf("n-%d", len(f.notes)+1),
		Author:  models.UserRef{ID: authorID, Name: "Sarthak"},
		Title:   title,
		Content: content,
		Phase:   phase,
		Tags:    tags,
	}
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeNoteService) List(_ context.Context) ([]*models.Note, error) {
	return f.notes, nil
}

func (f *fakeNoteService) Delete(_ context.Context, id string) error {
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeNoteService) Clear(_ context.Context) error {
	f.notes = nil
	f.cleared = true
	return nil
}

type fakeMessageService struct {
	messages map[string][]*models.Message
	cleared  []string
}

func (f *fakeMessageService) Append(_ context.Context, senderID, channel, content string) (*models.Message, error) {
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", common.ErrorValidation, channel)
	}
	msg := &models.Message{
		ID:          "m-1",
		Sender:      models.UserRef{ID: senderID, Name: "Sarthak"},
		Content:     content,
		MessageType: models.MessageTypeText,
		Channel:     channel,
		CreatedAt:   time.Now().UTC(),
	}
	if f.messages == nil {
		f.messages = make(map[string][]*models.Message)
	}
	f.messages[channel] = append(f.messages[channel], msg)
	return msg, nil
}

func (f *fakeMessageService) List(_ context.Context, channel string) ([]*models.Message, error) {
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", common.ErrorValidation, channel)
	}
	return f.messages[channel], nil
}

func (f *fakeMessageService) Clear(_ context.Context, channel string) error {
	f.cleared = append(f.cleared, channel)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestAPI() (*API, *fakeNoteService, *fakeMessageService) {
	notes := &fakeNoteService{}
	messages := &fakeMessageService{}
	users := &fakeUserService{users: []*models.User{
		{ID: "u-1", Name: "Sarthak", Role: models.RoleGenomics, IsActive: true},
		{ID: "u-2", Name: "Daksh", Role: models.RoleIntegration, IsActive: true},
	}}
	api := NewAPI(users, notes, messages, nil, GeminiConfig{}, testLogger())
	return api, notes, messages
}

func doRequest(t *testing.T, api *API, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	api.Routes().ServeHTTP(rr, req)
	return rr
}

func TestHandleListUsers(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodGet, "/api/users", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var users []*models.User
	if err := json.Unmarshal(rr.Body.Bytes(), &users); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Sarthak" {
		t.Fatalf("unexpected users: %+v", users)
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", rr.Body.String())
	}
}

func TestHandleLogin(t *testing.T) {
	api, _, _ := newTestAPI()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid credentials", `{"name":"Sarthak","password":"pass123"}`, http.StatusOK},
		{"wrong password", `{"name":"Sarthak","password":"nope"}`, http.StatusUnauthorized},
		{"missing fields", `{"name":"Sarthak"}`, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, api, http.MethodPost, "/api/login", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleLogin_ReturnsToken(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/api/login", `{"name":"Sarthak","password":"pass123"}`)
	var resp loginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token != "signed-token" || resp.ID != "u-1" || resp.Role != models.RoleGenomics {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleCreateNote(t *testing.T) {
	api, notes, _ := newTestAPI()

	body := `{"authorId":"u-1","title":"Dataset split","content":"Hold out 20% of scans","phase":"data-collection","tags":["data"]}`
	rr := doRequest(t, api, http.MethodPost, "/api/notes", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}

	var note models.Note
	if err := json.Unmarshal(rr.Body.Bytes(), &note); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if note.Title != "Dataset split" || note.Author.ID != "u-1" {
		t.Fatalf("unexpected note: %+v", note)
	}
	if len(notes.notes) != 1 {
		t.Fatalf("note not persisted")
	}
}

func TestHandleCreateNote_MissingFields(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodPost, "/api/notes", `{"authorId":"u-1","title":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestHandleDeleteNote(t *testing.T) {
	api, notes, _ := newTestAPI()
	notes.notes = []*models.Note{{ID: "n-1", Title: "stale"}}

	rr := doRequest(t, api, http.MethodDelete, "/api/notes/n-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if len(notes.notes) != 0 {
		t.Fatalf("note not deleted")
	}

	rr = doRequest(t, api, http.MethodDelete, "/api/notes/n-1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing note, got %d", rr.Code)
	}
}

func TestHandleChannelHistory(t *testing.T) {
	api, _, messages := newTestAPI()
	_, err := messages.Append(context.Background(), "u-1", models.ChannelImaging, "scan uploaded")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rr := doRequest(t, api, http.MethodGet, "/api/chat/imaging", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var history []*models.Message
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(history) != 1 || history[0].Content != "scan uploaded" {
		t.Fatalf("unexpected history: %+v", history)
	}

	rr = doRequest(t, api, http.MethodGet, "/api/chat/ops", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown channel, got %d", rr.Code)
	}
}

func TestHandleChannelHistory_EmptyChannelIsEmptyList(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodGet, "/api/chat/general", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("empty history must encode as [], got %s", body)
	}
}

func TestHandlePostMessage(t *testing.T) {
	api, _, messages := newTestAPI()

	body := `{"senderId":"u-1","channel":"general","content":"Daily standup: all on track!"}`
	rr := doRequest(t, api, http.MethodPost, "/api/chat", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}

	var msg models.Message
	if err := json.Unmarshal(rr.Body.Bytes(), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Sender.Name != "Sarthak" || msg.MessageType != models.MessageTypeText {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if len(messages.messages[models.ChannelGeneral]) != 1 {
		t.Fatalf("message not persisted")
	}
}

func TestHandleClearEndpoints(t *testing.T) {
	api, notes, messages := newTestAPI()
	notes.notes = []*models.Note{{ID: "n-1"}}

	rr := doRequest(t, api, http.MethodPost, "/api/clear-notes", "")
	if rr.Code != http.StatusOK || !notes.cleared {
		t.Fatalf("clear notes failed: %d", rr.Code)
	}

	rr = doRequest(t, api, http.MethodPost, "/api/clear-chat", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("clear chat failed: %d", rr.Code)
	}
	if len(messages.cleared) != 1 || messages.cleared[0] != "" {
		t.Fatalf("expected full clear, got %v", messages.cleared)
	}
}

func TestHandleGemini(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "summarize the imaging results") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"done"}]}}]}`))
	}))
	defer upstream.Close()

	api, _, _ := newTestAPI()
	api.gemini = GeminiConfig{APIKey: "test-key", Endpoint: upstream.URL}

	rr := doRequest(t, api, http.MethodPost, "/api/gemini", `{"prompt":"summarize the imaging results"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "candidates") {
		t.Fatalf("upstream body not relayed: %s", rr.Body.String())
	}
}

func TestHandleGemini_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	api, _, _ := newTestAPI()
	api.gemini = GeminiConfig{APIKey: "test-key", Endpoint: upstream.URL}

	rr := doRequest(t, api, http.MethodPost, "/api/gemini", `{"prompt":"hello"}`)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}

func TestHandleGemini_MissingPrompt(t *testing.T) {
	api, _, _ := newTestAPI()
	api.gemini = GeminiConfig{APIKey: "test-key", Endpoint: "http://unused"}

	rr := doRequest(t, api, http.MethodPost, "/api/gemini", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	api, _, _ := newTestAPI()

	rr := doRequest(t, api, http.MethodOptions, "/api/notes", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
