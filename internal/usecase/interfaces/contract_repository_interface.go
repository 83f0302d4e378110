package interfaces

import (
	"context"
	"time"

	"fotostudio/internal/domain/entities"
)

// IContractRepository abstracts DynamoDB persistence for Contract.
//
// All mutations are conditional read-modify-write operations keyed by id. A
// mutation whose condition fails (missing record, already signed, stale OTP)
// returns a zero-value contract and no error; callers re-read the record to
// classify the failure. This is what makes two concurrent sign calls resolve
// to exactly one winner.

type IContractRepository interface {
	Create(ctx context.Context, c entities.Contract) (entities.Contract, error)
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Contract, error)
	// ListByTemplateID returns at most limit contracts referencing the
	// template; used to block template deletion while references exist.
	ListByTemplateID(ctx context.Context, templateID string, limit int32) ([]entities.Contract, error)
	ListAll(ctx context.Context) ([]entities.Contract, error)

	// MergeFieldValues upserts the given field values (last-write-wins per
	// field id) and forces status to filled. Condition: record exists and is
	// not signed.
	MergeFieldValues(ctx context.Context, id string, values map[string]any) (entities.Contract, error)

	// StoreOTP sets the one-time code and its expiry, replacing any prior
	// code. Condition: record exists and is not signed.
	StoreOTP(ctx context.Context, id, code string, expiresAt time.Time) (entities.Contract, error)

	// FinalizeSignature atomically transitions the contract to signed:
	// clears the OTP fields and sets signed_at plus the rendered artifact
	// ref. Condition: record exists, is not signed, and still carries
	// exactly the presented code.
	FinalizeSignature(ctx context.Context, id, code, signedDocumentRef string, signedAt time.Time) (entities.Contract, error)
}
