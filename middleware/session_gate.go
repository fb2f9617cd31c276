package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chicknext/chicknext/utils"
)

// SessionCookieName is the cookie carrying the session token, shared with
// the API service that issues it.
const SessionCookieName = "cookie"

// SessionRequired gates a route behind a valid server-side session: the
// cookie's token must resolve to an unexpired entry in the session store,
// otherwise the browser is sent back to the home page.
func SessionRequired(sessions *utils.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.Redirect(http.StatusFound, "/")
			ctx.Abort()
			return
		}
		if _, ok := sessions.Validate(ctx.Request.Context(), token); !ok {
			ctx.Redirect(http.StatusFound, "/")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
