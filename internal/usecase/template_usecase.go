package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrTemplateNotFound       = errors.New("template not found")
	ErrInvalidTemplateID      = errors.New("invalid template id")
	ErrInvalidTemplateName    = errors.New("invalid template name")
	ErrInvalidBaseDocumentRef = errors.New("invalid base document ref")
	ErrInvalidTemplateField   = errors.New("invalid template field")
	ErrDuplicateFieldID       = errors.New("duplicate field id")
	ErrTemplateInUse          = errors.New("template referenced by contracts")
)

// TemplateUpdate carries a partial template update; nil members keep the
// stored value.
type TemplateUpdate struct {
	Name            *string
	BaseDocumentRef *string
	Fields          *[]entities.ContractField
}

// ITemplateUseCase exposes contract template management.

type ITemplateUseCase interface {
	Create(ctx context.Context, name, baseDocumentRef string, fields []entities.ContractField) (entities.ContractTemplate, error)
	GetByID(ctx context.Context, id string) (entities.ContractTemplate, error)
	List(ctx context.Context) ([]entities.ContractTemplate, error)
	Update(ctx context.Context, id string, upd TemplateUpdate) (entities.ContractTemplate, error)
	Delete(ctx context.Context, id string) error
}

type TemplateUseCase struct {
	repo      interfaces.ITemplateRepository
	contracts interfaces.IContractRepository
}

var _ ITemplateUseCase = (*TemplateUseCase)(nil)

func NewTemplateUseCase(repo interfaces.ITemplateRepository, contracts interfaces.IContractRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, contracts: contracts}
}

func (u *TemplateUseCase) Create(ctx context.Context, name, baseDocumentRef string, fields []entities.ContractField) (entities.ContractTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.ContractTemplate{}, ErrInvalidTemplateName
	}
	baseDocumentRef = strings.TrimSpace(baseDocumentRef)
	if baseDocumentRef == "" {
		return entities.ContractTemplate{}, ErrInvalidBaseDocumentRef
	}
	if err := validateFields(fields); err != nil {
		return entities.ContractTemplate{}, err
	}

	t := entities.ContractTemplate{
		ID:              uuid.NewString(),
		Name:            name,
		BaseDocumentRef: baseDocumentRef,
		Fields:          fields,
		CreatedAt:       time.Now().UTC(),
	}
	return u.repo.Create(ctx, t)
}

func (u *TemplateUseCase) GetByID(ctx context.Context, id string) (entities.ContractTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ContractTemplate{}, ErrInvalidTemplateID
	}

	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ContractTemplate{}, err
	}
	if t.ID == "" {
		return entities.ContractTemplate{}, ErrTemplateNotFound
	}
	return t, nil
}

func (u *TemplateUseCase) List(ctx context.Context) ([]entities.ContractTemplate, error) {
	return u.repo.List(ctx)
}

func (u *TemplateUseCase) Update(ctx context.Context, id string, upd TemplateUpdate) (entities.ContractTemplate, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ContractTemplate{}, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return entities.ContractTemplate{}, ErrInvalidTemplateName
		}
		current.Name = name
	}
	if upd.BaseDocumentRef != nil {
		ref := strings.TrimSpace(*upd.BaseDocumentRef)
		if ref == "" {
			return entities.ContractTemplate{}, ErrInvalidBaseDocumentRef
		}
		current.BaseDocumentRef = ref
	}
	if upd.Fields != nil {
		if err := validateFields(*upd.Fields); err != nil {
			return entities.ContractTemplate{}, err
		}
		current.Fields = *upd.Fields
	}

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.ContractTemplate{}, err
	}
	if updated.ID == "" {
		return entities.ContractTemplate{}, ErrTemplateNotFound
	}
	return updated, nil
}

// Delete removes a template. Deletion is blocked while any contract still
// references the template, so contract projections never lose their field
// definitions.
func (u *TemplateUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidTemplateID
	}

	refs, err := u.contracts.ListByTemplateID(ctx, id, 1)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return ErrTemplateInUse
	}

	existed, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrTemplateNotFound
	}
	return nil
}

func validateFields(fields []entities.ContractField) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.ID) == "" {
			return ErrInvalidTemplateField
		}
		if !entities.KnownFieldType(f.Type) {
			return ErrInvalidTemplateField
		}
		if f.Page < 1 {
			return ErrInvalidTemplateField
		}
		if f.X < 0 || f.X > 100 || f.Y < 0 || f.Y > 100 {
			return ErrInvalidTemplateField
		}
		if f.Width < 0 || f.Height < 0 {
			return ErrInvalidTemplateField
		}
		if _, dup := seen[f.ID]; dup {
			return ErrDuplicateFieldID
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
