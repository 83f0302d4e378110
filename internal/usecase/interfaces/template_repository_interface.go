package interfaces

import (
	"context"
	"fotostudio/internal/domain/entities"
)

// ITemplateRepository abstracts DynamoDB persistence for ContractTemplate.
//
// Missing records are reported as zero-value entities, not errors; errors are
// reserved for infrastructure failures.

type ITemplateRepository interface {
	Create(ctx context.Context, t entities.ContractTemplate) (entities.ContractTemplate, error)
	GetByID(ctx context.Context, id string) (entities.ContractTemplate, error)
	List(ctx context.Context) ([]entities.ContractTemplate, error)
	// Update replaces the stored template in full; returns a zero-value
	// template when the id does not exist.
	Update(ctx context.Context, t entities.ContractTemplate) (entities.ContractTemplate, error)
	// Delete removes the template; the bool reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
