package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/service"
	"github.com/sweebapp/sweebguard/internal/utils"
)

// newTestHandler builds a Handler around the given service set; nil fields
// are fine as long as the exercised handler does not touch them.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// asUser stamps the authenticated user ID into the request context the way
// the auth middleware does.
func asUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}
