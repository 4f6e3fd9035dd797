package middleware

import (
	"errors"
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	AdminKeyHeader = "X-Admin-Key"

	msgAdminKeyNotConfigured = "Clé administrateur non configurée sur le serveur."
	msgAdminKeyInvalid       = "Clé administrateur invalide."
)

// AdminKey пропускает запрос только с верным заголовком X-Admin-Key.
// Без настроенного ключа все админские запросы отклоняются с 500.
func AdminKey(authorizer Authorizer, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authorizer.Authorize(r.Header.Get(AdminKeyHeader))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, admin.ErrNotConfigured):
				handlers.RespondError(w, http.StatusInternalServerError, msgAdminKeyNotConfigured)
			default:
				logger.Warn("AdminKey: rejected %s %s from %s", r.Method, r.URL.Path, clientIP(r, nil))
				handlers.RespondUnauthorized(w, msgAdminKeyInvalid)
			}
		})
	}
}
