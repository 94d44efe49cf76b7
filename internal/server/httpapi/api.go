// Package httpapi exposes the REST surface and mounts the websocket
// endpoint. Handlers depend on narrow service interfaces so tests can drive
// them with fakes.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/services"
)

// UserService is the roster and login surface the API needs.
type UserService interface {
	Login(ctx context.Context, name, password string) (*services.LoginResult, error)
	List(ctx context.Context) ([]*models.User, error)
}

// NoteService is the notes surface the API needs.
type NoteService interface {
	Create(ctx context.Context, authorID, title, content, phase string, tags []string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// MessageService is the chat history surface the API needs.
type MessageService interface {
	Append(ctx context.Context, senderID, channel, content string) (*models.Message, error)
	List(ctx context.Context, channel string) ([]*models.Message, error)
	Clear(ctx context.Context, channel string) error
}

// GeminiConfig points the completion proxy at the upstream model API.
type GeminiConfig struct {
	APIKey   string
	Endpoint string
}

type API struct {
	users    UserService
	notes    NoteService
	messages MessageService
	ws       http.Handler
	gemini   GeminiConfig

	httpClient *http.Client
	validate   *validator.Validate
	logger     logging.Logger
}

func NewAPI(users UserService, notes NoteService, messages MessageService, ws http.Handler, gemini GeminiConfig, logger logging.Logger) *API {
	return &API{
		users:      users,
		notes:      notes,
		messages:   messages,
		ws:         ws,
		gemini:     gemini,
		httpClient: &http.Client{Timeout: geminiTimeout},
		validate:   validator.New(),
		logger:     logger.With("module", "httpapi"),
	}
}

// Routes builds the full route table wrapped in the CORS middleware.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users", a.handleListUsers)
	mux.HandleFunc("POST /api/login", a.handleLogin)

	mux.HandleFunc("GET /api/notes", a.handleListNotes)
	mux.HandleFunc("POST /api/notes", a.handleCreateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", a.handleDeleteNote)

	mux.HandleFunc("GET /api/chat/{channel}", a.handleChannelHistory)
	mux.HandleFunc("POST /api/chat", a.handlePostMessage)

	mux.HandleFunc("POST /api/clear-notes", a.handleClearNotes)
	mux.HandleFunc("POST /api/clear-chat", a.handleClearChat)

	mux.HandleFunc("POST /api/gemini", a.handleGemini)

	if a.ws != nil {
		mux.Handle("GET /ws", a.ws)
	}
	mux.HandleFunc("GET /healthz", a.handleHealth)

	return corsMiddleware(mux)
}

// corsMiddleware allows the browser client to call the API from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
