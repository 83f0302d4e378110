package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"
	mock_interfaces "fotostudio/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type contractMocks struct {
	contracts *mock_interfaces.MockIContractRepository
	templates *mock_interfaces.MockITemplateRepository
	clients   *mock_interfaces.MockIClientRepository
	notifier  *mock_interfaces.MockINotificationGateway
	renderer  *mock_interfaces.MockIDocumentRenderer
}

func newContractUseCase(ctrl *gomock.Controller) (*ContractUseCase, contractMocks) {
	m := contractMocks{
		contracts: mock_interfaces.NewMockIContractRepository(ctrl),
		templates: mock_interfaces.NewMockITemplateRepository(ctrl),
		clients:   mock_interfaces.NewMockIClientRepository(ctrl),
		notifier:  mock_interfaces.NewMockINotificationGateway(ctrl),
		renderer:  mock_interfaces.NewMockIDocumentRenderer(ctrl),
	}
	uc := NewContractUseCase(m.contracts, m.templates, m.clients, m.notifier, m.renderer, NewOTPIssuer(6, 10*time.Minute))
	return uc, m
}

func sentContract() entities.Contract {
	return entities.Contract{
		ID:          "c-1",
		TemplateID:  "tpl-1",
		ClientID:    "cl-1",
		ClientName:  "Ana",
		ClientEmail: "ana@example.com",
		Status:      entities.ContractStatusSent,
		FieldValues: map[string]any{},
		CreatedAt:   time.Now().UTC(),
		SentAt:      time.Now().UTC(),
	}
}

func filledWithOtp(code string, expiresAt time.Time) entities.Contract {
	c := sentContract()
	c.Status = entities.ContractStatusFilled
	c.FieldValues = map[string]any{"client_name": "Ana"}
	c.OTPCode = &code
	c.OTPExpiresAt = &expiresAt
	return c
}

func signedContract() entities.Contract {
	c := sentContract()
	c.Status = entities.ContractStatusSigned
	at := time.Now().UTC()
	c.SignedAt = &at
	c.SignedDocumentRef = "signed_documents/c-1_signed.pdf"
	return c
}

func TestContractUseCase_Send(t *testing.T) {
	t.Run("invalid template id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newContractUseCase(ctrl)

		_, err := uc.Send(context.Background(), "   ", "cl-1")
		if !errors.Is(err, ErrInvalidTemplateID) {
			t.Fatalf("expected ErrInvalidTemplateID, got %v", err)
		}
	})

	t.Run("invalid client id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newContractUseCase(ctrl)

		_, err := uc.Send(context.Background(), "tpl-1", "")
		if !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("template missing creates nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-zz").Return(entities.ContractTemplate{}, nil)

		_, err := uc.Send(context.Background(), "tpl-zz", "cl-1")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("expected ErrTemplateNotFound, got %v", err)
		}
	})

	t.Run("client missing creates nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{ID: "tpl-1", Name: "Wedding"}, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cl-zz").Return(entities.Client{}, nil)

		_, err := uc.Send(context.Background(), "tpl-1", "cl-zz")
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("send success snapshots client and stamps sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{ID: "tpl-1", Name: "Wedding"}, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", Name: "Ana", Email: "ana@example.com"}, nil)
		m.contracts.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Contract{})).DoAndReturn(
			func(_ context.Context, c entities.Contract) (entities.Contract, error) {
				if c.ID == "" || c.TemplateID != "tpl-1" || c.ClientID != "cl-1" {
					t.Fatalf("unexpected contract: %+v", c)
				}
				if c.ClientName != "Ana" || c.ClientEmail != "ana@example.com" {
					t.Fatalf("expected client snapshot, got %+v", c)
				}
				if c.Status != entities.ContractStatusSent || c.SentAt.IsZero() {
					t.Fatalf("expected sent status with timestamp, got %+v", c)
				}
				if c.FieldValues == nil || len(c.FieldValues) != 0 {
					t.Fatalf("expected empty field values, got %+v", c.FieldValues)
				}
				return c, nil
			},
		)
		m.notifier.EXPECT().SendContractReady(gomock.Any(), "ana@example.com", "Ana", gomock.Any()).Return(nil)

		res, err := uc.Send(context.Background(), "tpl-1", "cl-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ContractStatusSent {
			t.Fatalf("expected sent, got %s", res.Status)
		}
	})

	t.Run("notification failure does not fail the send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{ID: "tpl-1"}, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", Name: "Ana", Email: "ana@example.com"}, nil)
		m.contracts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Contract) (entities.Contract, error) { return c, nil },
		)
		m.notifier.EXPECT().SendContractReady(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		if _, err := uc.Send(context.Background(), "tpl-1", "cl-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("repeated send yields distinct contracts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{ID: "tpl-1"}, nil).Times(2)
		m.clients.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", Name: "Ana", Email: "ana@example.com"}, nil).Times(2)
		m.contracts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Contract) (entities.Contract, error) { return c, nil },
		).Times(2)
		m.notifier.EXPECT().SendContractReady(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		first, err := uc.Send(context.Background(), "tpl-1", "cl-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Send(context.Background(), "tpl-1", "cl-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID == second.ID {
			t.Fatalf("expected distinct ids, got %s twice", first.ID)
		}
	})
}

func TestContractUseCase_Fill(t *testing.T) {
	t.Run("invalid contract id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newContractUseCase(ctrl)

		_, err := uc.Fill(context.Background(), " ", nil)
		if !errors.Is(err, ErrInvalidContractID) {
			t.Fatalf("expected ErrInvalidContractID, got %v", err)
		}
	})

	t.Run("contract missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-zz").Return(entities.Contract{}, nil)

		_, err := uc.Fill(context.Background(), "c-zz", nil)
		if !errors.Is(err, ErrContractNotFound) {
			t.Fatalf("expected ErrContractNotFound, got %v", err)
		}
	})

	t.Run("signed contract rejects fill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(signedContract(), nil)

		_, err := uc.Fill(context.Background(), "c-1", map[string]any{"x": "y"})
		if !errors.Is(err, ErrContractSigned) {
			t.Fatalf("expected ErrContractSigned, got %v", err)
		}
	})

	t.Run("empty fill is valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		filled := sentContract()
		filled.Status = entities.ContractStatusFilled
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.contracts.EXPECT().MergeFieldValues(gomock.Any(), "c-1", map[string]any{}).Return(filled, nil)

		res, err := uc.Fill(context.Background(), "c-1", map[string]any{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ContractStatusFilled {
			t.Fatalf("expected filled, got %s", res.Status)
		}
	})

	t.Run("merge success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		values := map[string]any{"client_name": "Ana", "agreed": true}
		filled := sentContract()
		filled.Status = entities.ContractStatusFilled
		filled.FieldValues = values
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.contracts.EXPECT().MergeFieldValues(gomock.Any(), "c-1", values).Return(filled, nil)

		res, err := uc.Fill(context.Background(), "c-1", values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.FieldValues) != 2 {
			t.Fatalf("unexpected field values: %+v", res.FieldValues)
		}
	})

	t.Run("lost race against a concurrent sign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.contracts.EXPECT().MergeFieldValues(gomock.Any(), "c-1", gomock.Any()).Return(entities.Contract{}, nil)
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(signedContract(), nil)

		_, err := uc.Fill(context.Background(), "c-1", map[string]any{"x": 1})
		if !errors.Is(err, ErrContractSigned) {
			t.Fatalf("expected ErrContractSigned, got %v", err)
		}
	})
}

func TestContractUseCase_RequestOtp(t *testing.T) {
	t.Run("signed contract rejects otp request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(signedContract(), nil)

		_, err := uc.RequestOtp(context.Background(), "c-1")
		if !errors.Is(err, ErrContractSigned) {
			t.Fatalf("expected ErrContractSigned, got %v", err)
		}
	})

	t.Run("stores minted code and mails the same code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		var storedCode string
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.contracts.EXPECT().StoreOTP(gomock.Any(), "c-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id, code string, expiresAt time.Time) (entities.Contract, error) {
				if len(code) != 6 {
					t.Fatalf("expected 6-digit code, got %q", code)
				}
				if !expiresAt.After(time.Now().UTC()) {
					t.Fatalf("expected future expiry, got %s", expiresAt)
				}
				storedCode = code
				c := sentContract()
				c.OTPCode = &code
				c.OTPExpiresAt = &expiresAt
				return c, nil
			},
		)
		m.notifier.EXPECT().SendOtpCode(gomock.Any(), "ana@example.com", "Ana", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _, code string, _ time.Time) error {
				if code != storedCode {
					t.Fatalf("mailed code %q differs from stored %q", code, storedCode)
				}
				return nil
			},
		)

		res, err := uc.RequestOtp(context.Background(), "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OTPCode == nil || *res.OTPCode != storedCode {
			t.Fatalf("expected stored code on result")
		}
	})

	t.Run("delivery failure surfaces but code stays stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.contracts.EXPECT().StoreOTP(gomock.Any(), "c-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id, code string, expiresAt time.Time) (entities.Contract, error) {
				c := sentContract()
				c.OTPCode = &code
				c.OTPExpiresAt = &expiresAt
				return c, nil
			},
		)
		m.notifier.EXPECT().SendOtpCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		_, err := uc.RequestOtp(context.Background(), "c-1")
		if !errors.Is(err, ErrOtpDelivery) {
			t.Fatalf("expected ErrOtpDelivery, got %v", err)
		}
	})
}

func TestContractUseCase_Sign(t *testing.T) {
	tpl := entities.ContractTemplate{ID: "tpl-1", Name: "Wedding", BaseDocumentRef: "docs/base.pdf", Fields: validFields()}

	t.Run("no pending code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp, got %v", err)
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute)), nil)

		_, err := uc.Sign(context.Background(), "c-1", "000000")
		if !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp, got %v", err)
		}
	})

	t.Run("expired code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(-time.Minute)), nil)

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp, got %v", err)
		}
	})

	t.Run("already signed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(signedContract(), nil)

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrContractSigned) {
			t.Fatalf("expected ErrContractSigned, got %v", err)
		}
	})

	t.Run("render failure leaves contract untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute)), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(tpl, nil)
		m.renderer.EXPECT().RenderSigned(gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrRenderFailed) {
			t.Fatalf("expected ErrRenderFailed, got %v", err)
		}
	})

	t.Run("sign success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		c := filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute))
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(c, nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(tpl, nil)
		m.renderer.EXPECT().RenderSigned(gomock.Any(), gomock.AssignableToTypeOf(interfaces.RenderRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.RenderRequest) (string, error) {
				if req.ContractID != "c-1" || req.TemplateName != "Wedding" || req.ClientName != "Ana" {
					t.Fatalf("unexpected render request: %+v", req)
				}
				if len(req.Fields) != 2 || len(req.FieldValues) != 1 {
					t.Fatalf("expected template fields and contract values: %+v", req)
				}
				return "signed_documents/c-1_signed.pdf", nil
			},
		)
		m.contracts.EXPECT().FinalizeSignature(gomock.Any(), "c-1", "123456", "signed_documents/c-1_signed.pdf", gomock.Any()).DoAndReturn(
			func(_ context.Context, id, code, ref string, at time.Time) (entities.Contract, error) {
				s := signedContract()
				s.SignedAt = &at
				s.SignedDocumentRef = ref
				return s, nil
			},
		)
		m.notifier.EXPECT().SendSignedConfirmation(gomock.Any(), "ana@example.com", "Ana", "c-1", "signed_documents/c-1_signed.pdf").Return(nil)

		res, err := uc.Sign(context.Background(), "c-1", "123456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ContractStatusSigned || res.SignedAt == nil {
			t.Fatalf("expected signed result, got %+v", res)
		}
		if res.OTPCode != nil {
			t.Fatalf("expected cleared otp, got %+v", res.OTPCode)
		}
	})

	t.Run("confirmation failure does not fail the sign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute)), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(tpl, nil)
		m.renderer.EXPECT().RenderSigned(gomock.Any(), gomock.Any()).Return("signed_documents/c-1_signed.pdf", nil)
		m.contracts.EXPECT().FinalizeSignature(gomock.Any(), "c-1", "123456", gomock.Any(), gomock.Any()).Return(signedContract(), nil)
		m.notifier.EXPECT().SendSignedConfirmation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		if _, err := uc.Sign(context.Background(), "c-1", "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent sign loser gets already-signed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute)), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(tpl, nil)
		m.renderer.EXPECT().RenderSigned(gomock.Any(), gomock.Any()).Return("signed_documents/c-1_signed.pdf", nil)
		m.contracts.EXPECT().FinalizeSignature(gomock.Any(), "c-1", "123456", gomock.Any(), gomock.Any()).Return(entities.Contract{}, nil)
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(signedContract(), nil)

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrContractSigned) {
			t.Fatalf("expected ErrContractSigned, got %v", err)
		}
	})

	t.Run("stale code lost to a newer request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("123456", time.Now().UTC().Add(5*time.Minute)), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(tpl, nil)
		m.renderer.EXPECT().RenderSigned(gomock.Any(), gomock.Any()).Return("signed_documents/c-1_signed.pdf", nil)
		m.contracts.EXPECT().FinalizeSignature(gomock.Any(), "c-1", "123456", gomock.Any(), gomock.Any()).Return(entities.Contract{}, nil)
		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(filledWithOtp("999999", time.Now().UTC().Add(5*time.Minute)), nil)

		_, err := uc.Sign(context.Background(), "c-1", "123456")
		if !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp, got %v", err)
		}
	})
}

func TestContractUseCase_GetByID(t *testing.T) {
	t.Run("projection merges template fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{ID: "tpl-1", Name: "Wedding", BaseDocumentRef: "docs/base.pdf", Fields: validFields()}, nil)

		res, err := uc.GetByID(context.Background(), "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.TemplateName != "Wedding" || res.BaseDocumentRef != "docs/base.pdf" || len(res.Fields) != 2 {
			t.Fatalf("unexpected projection: %+v", res)
		}
	})

	t.Run("template gone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().GetByID(gomock.Any(), "c-1").Return(sentContract(), nil)
		m.templates.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.ContractTemplate{}, nil)

		_, err := uc.GetByID(context.Background(), "c-1")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("expected ErrTemplateNotFound, got %v", err)
		}
	})
}

func TestContractUseCase_Lists(t *testing.T) {
	t.Run("list by client id rejects blank", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newContractUseCase(ctrl)

		_, err := uc.ListByClientID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("list by client id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newContractUseCase(ctrl)

		m.contracts.EXPECT().ListByClientID(gomock.Any(), "cl-1").Return([]entities.Contract{sentContract()}, nil)

		res, err := uc.ListByClientID(context.Background(), "cl-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 {
			t.Fatalf("expected 1 contract, got %d", len(res))
		}
	})
}
