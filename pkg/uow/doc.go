// Package uow provides a minimal unit-of-work abstraction: a per-request (or
// per-transaction) collector of commit-success callbacks.
//
// The contract is deliberately small: a callback registered with OnCommit
// fires if and only if the unit completes successfully, at most once, in
// registration order. A rolled-back unit discards its callbacks without
// running them.
//
// # HTTP usage
//
// Middleware opens a unit per request and commits it when the handler
// produces a non-5xx response:
//
//	r := chi.NewRouter()
//	r.Use(uow.Middleware())
//
//	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//		u, _ := uow.FromContext(r.Context())
//		_ = u.OnCommit(func(ctx context.Context) error {
//			// runs only if the request succeeds
//			return nil
//		})
//	})
//
// # Database usage
//
// WithinTx binds a unit of work to a pgx transaction, so hooks only fire
// after the database commit went through:
//
//	err := uow.WithinTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
//		if _, err := tx.Exec(ctx, "INSERT ..."); err != nil {
//			return err
//		}
//		u := uow.MustFromContext(ctx)
//		return u.OnCommit(sendWelcomeEmail)
//	})
package uow
