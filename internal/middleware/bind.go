package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sidoine1991/agent-position-sub003/pkg/validator"
)

type boundKey[T any] struct{}

// BindJSON decodes and validates the body as T and stores it in the request
// context. Handlers read it back with Bound.
func BindJSON[T any](maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var target T
			body := http.MaxBytesReader(w, r.Body, maxBytes)
			if err := json.NewDecoder(body).Decode(&target); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}

			if err := validator.ValidateStruct(target); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), boundKey[T]{}, target)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Bound[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(boundKey[T]{}).(T)
	return v, ok
}
