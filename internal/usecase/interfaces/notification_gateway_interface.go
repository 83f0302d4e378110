package interfaces

import (
	"context"
	"time"
)

// INotificationGateway abstracts outbound delivery (e.g. SMTP relay).
//
// The contract flow only builds message content and delegates delivery.
// Dispatch is best-effort: callers bound it with a timeout and decide per
// message kind whether a failure surfaces to the client.
type INotificationGateway interface {
	SendContractReady(ctx context.Context, to, clientName, contractID string) error
	SendOtpCode(ctx context.Context, to, clientName, code string, expiresAt time.Time) error
	SendSignedConfirmation(ctx context.Context, to, clientName, contractID, signedDocumentRef string) error
}
