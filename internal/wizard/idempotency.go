package wizard

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// ============================================================
// Idempotency
// ============================================================

type idempotencyKey struct{}

// WithIdempotencyKey attaches the key a submitter should send upstream.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKey returns the key attached by WithIdempotencyKey.
func IdempotencyKey(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKey{}).(string)
	return key, ok && key != ""
}

// submissionKey derives a stable key from the draft key and the submitted
// document, so a retry of the same document is recognised upstream and an
// edited one is not.
func submissionKey(draftKey string, doc Document) string {
	// map keys marshal sorted, so equal documents give equal bytes
	body, err := json.Marshal(doc)
	if err != nil {
		return uuid.NewString()
	}
	name := append([]byte(draftKey+"\x00"), body...)
	return uuid.NewSHA1(uuid.NameSpaceOID, name).String()
}
