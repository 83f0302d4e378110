package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidContractID = errors.New("invalid contract id")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrContractSigned    = errors.New("contract already signed")
	ErrInvalidOtp        = errors.New("invalid or expired otp")
	ErrOtpDelivery       = errors.New("otp delivery failed")
	ErrRenderFailed      = errors.New("signed document rendering failed")
)

// notifyTimeout bounds every notification dispatch so a slow SMTP relay never
// stalls the state transition that triggered it.
const notifyTimeout = 5 * time.Second

// ContractProjection is a contract merged with the read-only parts of its
// template consumers need to render a fill form.
type ContractProjection struct {
	entities.Contract
	TemplateName    string
	BaseDocumentRef string
	Fields          []entities.ContractField
}

// IContractUseCase is the contract lifecycle: send, fill, request-otp, sign,
// plus read projections.

type IContractUseCase interface {
	Send(ctx context.Context, templateID, clientID string) (entities.Contract, error)
	Fill(ctx context.Context, contractID string, fieldValues map[string]any) (entities.Contract, error)
	RequestOtp(ctx context.Context, contractID string) (entities.Contract, error)
	Sign(ctx context.Context, contractID, otpCode string) (entities.Contract, error)
	GetByID(ctx context.Context, contractID string) (ContractProjection, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Contract, error)
	ListAll(ctx context.Context) ([]entities.Contract, error)
}

type ContractUseCase struct {
	contracts interfaces.IContractRepository
	templates interfaces.ITemplateRepository
	clients   interfaces.IClientRepository
	notifier  interfaces.INotificationGateway
	renderer  interfaces.IDocumentRenderer
	otp       *OTPIssuer
}

var _ IContractUseCase = (*ContractUseCase)(nil)

func NewContractUseCase(
	contracts interfaces.IContractRepository,
	templates interfaces.ITemplateRepository,
	clients interfaces.IClientRepository,
	notifier interfaces.INotificationGateway,
	renderer interfaces.IDocumentRenderer,
	otp *OTPIssuer,
) *ContractUseCase {
	if otp == nil {
		otp = NewOTPIssuer(0, 0)
	}
	return &ContractUseCase{
		contracts: contracts,
		templates: templates,
		clients:   clients,
		notifier:  notifier,
		renderer:  renderer,
		otp:       otp,
	}
}

// Send creates a fresh contract from a template for a client and dispatches
// the "contract ready" mail. Duplicates are allowed: each call creates an
// independent contract, even for the same template/client pair.
func (u *ContractUseCase) Send(ctx context.Context, templateID, clientID string) (entities.Contract, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return entities.Contract{}, ErrInvalidTemplateID
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return entities.Contract{}, ErrInvalidClientID
	}

	tpl, err := u.templates.GetByID(ctx, templateID)
	if err != nil {
		return entities.Contract{}, err
	}
	if tpl.ID == "" {
		return entities.Contract{}, ErrTemplateNotFound
	}

	cl, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		return entities.Contract{}, err
	}
	if cl.ID == "" {
		return entities.Contract{}, ErrClientNotFound
	}

	now := time.Now().UTC()
	c := entities.Contract{
		ID:          uuid.NewString(),
		TemplateID:  tpl.ID,
		ClientID:    cl.ID,
		ClientName:  cl.Name,
		ClientEmail: cl.Email,
		Status:      entities.ContractStatusPending,
		FieldValues: map[string]any{},
		CreatedAt:   now,
	}
	// Sending is simultaneous with creation: stamp sent before persisting.
	c.Status = entities.ContractStatusSent
	c.SentAt = now

	created, err := u.contracts.Create(ctx, c)
	if err != nil {
		return entities.Contract{}, err
	}
	log.Printf("[contract][usecase] sent contract_id=%s template_id=%s client_id=%s", created.ID, tpl.ID, cl.ID)

	// Best-effort: a failed "contract ready" mail never fails the send.
	u.dispatch("contract-ready", created.ID, func(nctx context.Context) error {
		return u.notifier.SendContractReady(nctx, created.ClientEmail, created.ClientName, created.ID)
	})

	return created, nil
}

// Fill merges field values into the contract (last-write-wins per field id)
// and moves it to filled. An empty map is a valid fill. Required-field
// enforcement is deferred to rendering at sign-time.
func (u *ContractUseCase) Fill(ctx context.Context, contractID string, fieldValues map[string]any) (entities.Contract, error) {
	c, err := u.load(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.Signed() {
		return entities.Contract{}, ErrContractSigned
	}

	updated, err := u.contracts.MergeFieldValues(ctx, c.ID, fieldValues)
	if err != nil {
		return entities.Contract{}, err
	}
	if updated.ID == "" {
		// Lost a race: the record vanished or got signed between the read
		// and the conditional write.
		return entities.Contract{}, u.classifyLostUpdate(ctx, c.ID)
	}
	log.Printf("[contract][usecase] filled contract_id=%s values=%d status=%s", updated.ID, len(fieldValues), updated.Status)
	return updated, nil
}

// RequestOtp mints a fresh code, stores it (invalidating any prior one) and
// mails it to the snapshotted client address. On delivery failure the code
// stays stored so a later sign attempt is still meaningful, but the caller
// is told delivery may not have reached the client.
func (u *ContractUseCase) RequestOtp(ctx context.Context, contractID string) (entities.Contract, error) {
	c, err := u.load(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.Signed() {
		return entities.Contract{}, ErrContractSigned
	}

	now := time.Now().UTC()
	code, expiresAt, err := u.otp.Issue(now)
	if err != nil {
		return entities.Contract{}, err
	}

	updated, err := u.contracts.StoreOTP(ctx, c.ID, code, expiresAt)
	if err != nil {
		return entities.Contract{}, err
	}
	if updated.ID == "" {
		return entities.Contract{}, u.classifyLostUpdate(ctx, c.ID)
	}
	log.Printf("[contract][usecase] otp stored contract_id=%s expires_at=%s", updated.ID, expiresAt.Format(time.RFC3339))

	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := u.notifier.SendOtpCode(nctx, updated.ClientEmail, updated.ClientName, code, expiresAt); err != nil {
		log.Printf("[contract][usecase] otp delivery failed contract_id=%s err=%v", updated.ID, err)
		return entities.Contract{}, ErrOtpDelivery
	}

	return updated, nil
}

// Sign validates the submitted code, renders the final artifact, then
// finalizes the signature with a single conditional write. Under concurrent
// sign calls exactly one caller wins; the loser gets the already-signed error.
func (u *ContractUseCase) Sign(ctx context.Context, contractID, otpCode string) (entities.Contract, error) {
	c, err := u.load(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.Signed() {
		return entities.Contract{}, ErrContractSigned
	}

	now := time.Now().UTC()
	if !u.otp.Validate(strings.TrimSpace(otpCode), c.OTPCode, c.OTPExpiresAt, now) {
		return entities.Contract{}, ErrInvalidOtp
	}

	tpl, err := u.templates.GetByID(ctx, c.TemplateID)
	if err != nil {
		return entities.Contract{}, err
	}
	if tpl.ID == "" {
		return entities.Contract{}, ErrTemplateNotFound
	}

	// Render before finalizing: a rendering failure leaves the contract in
	// filled state so the client can retry.
	ref, err := u.renderer.RenderSigned(ctx, interfaces.RenderRequest{
		ContractID:      c.ID,
		TemplateName:    tpl.Name,
		BaseDocumentRef: tpl.BaseDocumentRef,
		Fields:          tpl.Fields,
		FieldValues:     c.FieldValues,
		ClientName:      c.ClientName,
		SignedAt:        now,
	})
	if err != nil {
		log.Printf("[contract][usecase] render failed contract_id=%s err=%v", c.ID, err)
		return entities.Contract{}, ErrRenderFailed
	}

	updated, err := u.contracts.FinalizeSignature(ctx, c.ID, *c.OTPCode, ref, now)
	if err != nil {
		return entities.Contract{}, err
	}
	if updated.ID == "" {
		// Condition failed: either another sign won, or the stored code
		// changed under us. Re-read to tell the two apart.
		fresh, rerr := u.contracts.GetByID(ctx, c.ID)
		if rerr != nil {
			return entities.Contract{}, rerr
		}
		if fresh.ID == "" {
			return entities.Contract{}, ErrContractNotFound
		}
		if fresh.Signed() {
			return entities.Contract{}, ErrContractSigned
		}
		return entities.Contract{}, ErrInvalidOtp
	}
	log.Printf("[contract][usecase] signed contract_id=%s signed_document_ref=%s", updated.ID, updated.SignedDocumentRef)

	u.dispatch("signed-confirmation", updated.ID, func(nctx context.Context) error {
		return u.notifier.SendSignedConfirmation(nctx, updated.ClientEmail, updated.ClientName, updated.ID, updated.SignedDocumentRef)
	})

	return updated, nil
}

// GetByID returns the contract merged with its template's fields and base
// document ref. Both records must exist.
func (u *ContractUseCase) GetByID(ctx context.Context, contractID string) (ContractProjection, error) {
	c, err := u.load(ctx, contractID)
	if err != nil {
		return ContractProjection{}, err
	}

	tpl, err := u.templates.GetByID(ctx, c.TemplateID)
	if err != nil {
		return ContractProjection{}, err
	}
	if tpl.ID == "" {
		return ContractProjection{}, ErrTemplateNotFound
	}

	return ContractProjection{
		Contract:        c,
		TemplateName:    tpl.Name,
		BaseDocumentRef: tpl.BaseDocumentRef,
		Fields:          tpl.Fields,
	}, nil
}

func (u *ContractUseCase) ListByClientID(ctx context.Context, clientID string) ([]entities.Contract, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	return u.contracts.ListByClientID(ctx, clientID)
}

func (u *ContractUseCase) ListAll(ctx context.Context) ([]entities.Contract, error) {
	return u.contracts.ListAll(ctx)
}

func (u *ContractUseCase) load(ctx context.Context, contractID string) (entities.Contract, error) {
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return entities.Contract{}, ErrInvalidContractID
	}

	c, err := u.contracts.GetByID(ctx, contractID)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.ID == "" {
		return entities.Contract{}, ErrContractNotFound
	}
	return c, nil
}

func (u *ContractUseCase) classifyLostUpdate(ctx context.Context, contractID string) error {
	fresh, err := u.contracts.GetByID(ctx, contractID)
	if err != nil {
		return err
	}
	if fresh.ID == "" {
		return ErrContractNotFound
	}
	if fresh.Signed() {
		return ErrContractSigned
	}
	return ErrContractNotFound
}

// dispatch runs a notification under the bounded timeout and only logs
// failures.
func (u *ContractUseCase) dispatch(kind, contractID string, send func(ctx context.Context) error) {
	nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := send(nctx); err != nil {
		log.Printf("[contract][usecase] %s notification failed contract_id=%s err=%v", kind, contractID, err)
	}
}
