// Command example runs a minimal signup service demonstrating
// transaction-deferred email dispatch: the welcome email only goes out when
// the request finishes below 500.
package main

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/postmarktx"
	"github.com/dmitrymomot/postmarktx/pkg/uow"
)

//go:embed templates
var templatesFS embed.FS

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := postmarktx.MustLoadConfig()

	templates, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		logger.Error("failed to mount templates", slog.Any("error", err))
		os.Exit(1)
	}

	opts := []postmarktx.Option{
		postmarktx.WithRenderer(postmarktx.NewRenderer(templates)),
		postmarktx.WithLogger(logger),
	}
	// Swap Postmark for the on-disk sender during local development.
	if dir := os.Getenv("EMAIL_DEV_DIR"); dir != "" {
		opts = append(opts, postmarktx.WithSender(postmarktx.NewDevSender(dir)))
	}
	client := postmarktx.MustNew(cfg, opts...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(uow.Middleware(uow.WithLogger(logger)))
	r.Use(client.Middleware())

	r.Post("/signup", signupHandler(client))

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Info("listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

type signupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func signupHandler(client *postmarktx.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		msg, err := client.RenderEmail(
			client.Config().DefaultFrom,
			[]string{req.Email},
			"", // subject comes from the template frontmatter
			"welcome.md",
			map[string]any{"Name": req.Name},
		)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Deferred: fires only if this request commits (status < 500).
		if err := client.SendOne(r.Context(), msg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "created"})
	}
}
