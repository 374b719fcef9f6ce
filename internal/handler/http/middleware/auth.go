package middleware

import (
	"net/http"

	"github.com/confidence-group/hr-analytics-go/internal/domain/auth"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserIDFromRequest extracts the authenticated user's id from the verified
// token claims. Only meaningful behind AuthRequired.
func UserIDFromRequest(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, auth.ErrInvalidToken
	}
	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	default:
		return 0, auth.ErrInvalidToken
	}
}
