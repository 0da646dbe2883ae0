// Package auth carries the caller's group memberships through the request
// context. Authentication itself happens at the gateway in front of this
// service; the gateway forwards the resolved groups as a header.
package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// GroupsHeader is set by the authenticating gateway.
	GroupsHeader = "X-Forwarded-Groups"

	ctxGroups = "caller_groups"
)

// WithGroups parses the forwarded groups header into the gin context.
func WithGroups() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxGroups, parseGroups(c.GetHeader(GroupsHeader)))
		c.Next()
	}
}

// Groups returns the caller's groups, nil when none were forwarded.
func Groups(c *gin.Context) []string {
	if v, ok := c.Get(ctxGroups); ok {
		if groups, ok := v.([]string); ok {
			return groups
		}
	}
	return nil
}

func parseGroups(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
