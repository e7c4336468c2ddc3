package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/domain"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

// CapabilitySet rebuilds the caller's capability set from the values the auth
// middleware stored on the request.
func CapabilitySet(c *gin.Context) domain.CapabilitySet {
	raw, ok := c.Get("capabilities")
	if !ok {
		return domain.CapabilitySet{}
	}
	values, ok := raw.([]string)
	if !ok {
		return domain.CapabilitySet{}
	}
	return domain.FromStrings(values)
}

// Authorize gates a route on "may any of the caller's capabilities perform
// action on resource". Business invariants stay in the services; this guard
// only answers the access question.
func Authorize(enforcer *rbac.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := CapabilitySet(c)
		if len(caps) == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Allowed(caps, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
