package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/pkg/requestid"
)

// RequestID берет идентификатор запроса из заголовка или генерирует новый,
// кладет его в контекст и возвращает клиенту
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithRequestID(r.Context(), id)))
	})
}
