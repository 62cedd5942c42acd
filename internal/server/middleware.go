package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/gstbooks/internal/config"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
)

// OrgScopeMiddleware resolves the acting organization from the X-Org-Id
// header and stores it on the request context. Requests without a header
// fall back to the configured default org so single-tenant installs work
// out of the box.
func OrgScopeMiddleware(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := cfg.DefaultOrgID
		if header := strings.TrimSpace(c.GetHeader("X-Org-Id")); header != "" {
			parsed, err := snowflake.ParseString(header)
			if err != nil || parsed == 0 {
				AbortWithError(c, newValidationError("org_id", "invalid_org_id", "invalid org id"))
				return
			}
			orgID = int64(parsed)
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
