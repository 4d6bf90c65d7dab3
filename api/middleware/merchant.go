package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ordena-app/ordena-backend/api/responses"
	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
	"github.com/ordena-app/ordena-backend/pkg/logger"
)

const merchantIDHeader = "X-Merchant-Id"

// MerchantContext resolves the acting tenant from the gateway-set header.
// Requests without a valid merchant id never reach the handlers.
func MerchantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(merchantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "merchant context missing"))
				return
			}
			merchantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid merchant id"))
				return
			}

			ctx := WithMerchantID(r.Context(), merchantID.String())
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"merchant_id": merchantID.String()})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
