package middleware

import (
	"context"
	"net/http"
)

const (
	TenantIDKey    contextKey = "tenantID"
	TenantIDHeader string     = "X-Tenant-ID"

	// DefaultTenantID is assumed for requests without a tenant header, which
	// keeps single-tenant deployments header-free.
	DefaultTenantID = "default"
)

// Tenant middleware resolves the calling tenant from the request header.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantIDHeader)
		if tenantID == "" {
			tenantID = DefaultTenantID
		}

		ctx := context.WithValue(r.Context(), TenantIDKey, tenantID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID extracts the tenant id set by the Tenant middleware.
func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(TenantIDKey).(string); ok {
		return tenantID
	}
	return DefaultTenantID
}
