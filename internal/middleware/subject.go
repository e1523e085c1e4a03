package middleware

import (
	"context"
	"net/http"
)

// SubjectHeader carries the authenticated subject identifier. Token
// validation happens upstream; by the time a request reaches this service the
// gateway has already verified the token and stamped the subject here.
const SubjectHeader = "X-Subject"

type ctxKey int

const subjectKey ctxKey = iota

// RequireSubject rejects requests that arrive without an authenticated
// subject and stores the subject in the request context otherwise.
func RequireSubject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := r.Header.Get(SubjectHeader)
		if subject == "" {
			http.Error(w, "missing subject", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Subject returns the authenticated subject stored by RequireSubject, or the
// empty string when none is present.
func Subject(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}
