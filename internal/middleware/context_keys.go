package middleware

import (
	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey holds the authenticated token subject in the request context.
const actorKey = contextKey("actor")

// ActorFromContext returns the identity recorded in audit fields: the
// authenticated subject, or domain.SystemActor when auth is disabled.
func ActorFromContext(c *gin.Context) string {
	if actor, ok := c.Request.Context().Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return domain.SystemActor
}
