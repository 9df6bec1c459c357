// Package postmarktx integrates transactional email sending via Postmark
// into an HTTP application's request lifecycle. Handler code builds messages
// directly or from templates and dispatches them through a per-request batch
// client; by default the actual network send is deferred until the request's
// unit of work commits, so an aborted request never leaks email.
//
// # Architecture
//
// The package is built around three pieces:
//
//   - Sender, a provider abstraction delivering one batch per call, with a
//     Postmark implementation and a DevSender that writes emails to disk.
//   - Client, the facade owning configuration, sender and renderer, and
//     making the per-call dispatch decision (synchronous, deferred,
//     background).
//   - pkg/uow, a unit-of-work carrying commit-success callbacks, wired per
//     request by middleware or per database transaction via pgx.
//
// # Usage
//
//	cfg := postmarktx.MustLoadConfig()
//	client := postmarktx.MustNew(cfg,
//		postmarktx.WithRenderer(postmarktx.NewRenderer(templatesFS)),
//	)
//
//	r := chi.NewRouter()
//	r.Use(uow.Middleware())
//	r.Use(client.Middleware())
//
//	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//		msg, err := client.RenderEmail(
//			"noreply@example.com", []string{"user@example.com"},
//			"", "welcome.md", map[string]any{"Name": "Ada"},
//		)
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusInternalServerError)
//			return
//		}
//		// Deferred until the request commits; a 5xx response drops it.
//		if err := client.SendOne(r.Context(), msg); err != nil {
//			http.Error(w, err.Error(), http.StatusInternalServerError)
//			return
//		}
//		w.WriteHeader(http.StatusCreated)
//	})
//
// # Dispatch policy
//
// Send resolves the join-transaction flag from the explicit WithJoinTx
// override, falling back to POSTMARK_SHOULD_JOIN_TX (default true):
//
//   - joined: the send becomes a commit hook on the ambient unit of work and
//     fires only if that unit completes successfully.
//   - not joined: the send runs immediately and its error returns to the
//     caller.
//   - InBackground: either way, the provider call moves to a detached
//     goroutine whose failure is logged and not surfaced.
//
// # Configuration
//
//   - POSTMARK_SERVER_TOKEN (required): Postmark API credential.
//   - POSTMARK_ACCOUNT_TOKEN: account-level credential, optional.
//   - POSTMARK_SHOULD_JOIN_TX: default dispatch policy, defaults to true.
//   - POSTMARK_DEFAULT_FROM, POSTMARK_REPLY_TO: optional address defaults
//     applied by the Postmark sender.
//
// # Error handling
//
// Sentinel errors (ErrInvalidConfig, ErrInvalidMessage, ErrSendFailed,
// ErrNoUnitOfWork, ErrTemplateNotFound, ErrRenderFailed) support errors.Is
// checks. This layer never retries: every failure is propagated, surfaced by
// the unit of work at commit time, or - for background sends - logged and
// dropped.
package postmarktx
