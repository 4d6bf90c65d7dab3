package middleware

import "context"

type contextKey string

const ctxMerchantID contextKey = "merchant_id"

func MerchantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxMerchantID).(string); ok {
		return v
	}
	return ""
}

// WithMerchantID injects the merchant identifier into the context for
// downstream handlers.
func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxMerchantID, merchantID)
}
