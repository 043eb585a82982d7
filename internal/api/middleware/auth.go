package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/domain"
)

// Заголовки аутентификации, проставляемые API-шлюзом
const (
	HeaderUserSubject = "X-User-Subject"
	HeaderUserRoles   = "X-User-Roles"
)

type principalCtxKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает аутентифицированного пользователя из заголовков шлюза
// и кладет его в контекст запроса. Запросы без субъекта отклоняются
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := strings.TrimSpace(r.Header.Get(HeaderUserSubject))
			if subject == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, HeaderUserSubject)
				handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			principal := domain.Principal{UserID: subject}
			for _, raw := range strings.Split(r.Header.Get(HeaderUserRoles), ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				role, err := domain.ParseRole(raw)
				if err != nil {
					logger.Warn("%s %s - unknown role %q for user %s", r.Method, r.URL.Path, raw, subject)
					continue
				}
				principal.Roles = append(principal.Roles, role)
			}

			if len(principal.Roles) == 0 {
				principal.Roles = []domain.Role{domain.RoleCustomer}
			}

			ctx := context.WithValue(r.Context(), principalCtxKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext достает пользователя из контекста запроса
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return p, ok
}
