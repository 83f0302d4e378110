package repository

import (
	"context"
	"errors"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTemplatesTableName = "contract_templates"

type templateFieldItem struct {
	ID       string  `dynamodbav:"id"`
	Type     string  `dynamodbav:"type"`
	Label    string  `dynamodbav:"label"`
	X        float64 `dynamodbav:"x"`
	Y        float64 `dynamodbav:"y"`
	Page     int     `dynamodbav:"page"`
	Width    float64 `dynamodbav:"width"`
	Height   float64 `dynamodbav:"height"`
	Required bool    `dynamodbav:"required"`
}

type templateItem struct {
	ID              string              `dynamodbav:"id"`
	Name            string              `dynamodbav:"name"`
	BaseDocumentRef string              `dynamodbav:"base_document_ref"`
	Fields          []templateFieldItem `dynamodbav:"fields"`
	CreatedAt       string              `dynamodbav:"created_at"`
}

// TemplateDynamoRepository persists ContractTemplate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type TemplateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITemplateRepository = (*TemplateDynamoRepository)(nil)

func NewTemplateDynamoRepository(ddb *dynamodb.Client) *TemplateDynamoRepository {
	return &TemplateDynamoRepository{
		ddb:       ddb,
		tableName: tableName("TEMPLATES_TABLE", defaultTemplatesTableName),
	}
}

func (r *TemplateDynamoRepository) Create(ctx context.Context, t entities.ContractTemplate) (entities.ContractTemplate, error) {
	av, err := attributevalue.MarshalMap(toTemplateItem(t))
	if err != nil {
		return entities.ContractTemplate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ContractTemplate{}, err
	}
	return t, nil
}

func (r *TemplateDynamoRepository) GetByID(ctx context.Context, id string) (entities.ContractTemplate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ContractTemplate{}, err
	}
	if len(out.Item) == 0 {
		return entities.ContractTemplate{}, nil
	}

	var it templateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ContractTemplate{}, err
	}
	return fromTemplateItem(it), nil
}

func (r *TemplateDynamoRepository) List(ctx context.Context) ([]entities.ContractTemplate, error) {
	var items []entities.ContractTemplate
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it templateItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromTemplateItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

// Update replaces the stored template in full. A missing id maps to a
// zero-value template, matching the repository contract.
func (r *TemplateDynamoRepository) Update(ctx context.Context, t entities.ContractTemplate) (entities.ContractTemplate, error) {
	av, err := attributevalue.MarshalMap(toTemplateItem(t))
	if err != nil {
		return entities.ContractTemplate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ContractTemplate{}, nil
		}
		return entities.ContractTemplate{}, err
	}
	return t, nil
}

func (r *TemplateDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toTemplateItem(t entities.ContractTemplate) templateItem {
	fields := make([]templateFieldItem, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, templateFieldItem{
			ID:       f.ID,
			Type:     string(f.Type),
			Label:    f.Label,
			X:        f.X,
			Y:        f.Y,
			Page:     f.Page,
			Width:    f.Width,
			Height:   f.Height,
			Required: f.Required,
		})
	}
	return templateItem{
		ID:              t.ID,
		Name:            t.Name,
		BaseDocumentRef: t.BaseDocumentRef,
		Fields:          fields,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromTemplateItem(it templateItem) entities.ContractTemplate {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	fields := make([]entities.ContractField, 0, len(it.Fields))
	for _, f := range it.Fields {
		fields = append(fields, entities.ContractField{
			ID:       f.ID,
			Type:     entities.FieldType(f.Type),
			Label:    f.Label,
			X:        f.X,
			Y:        f.Y,
			Page:     f.Page,
			Width:    f.Width,
			Height:   f.Height,
			Required: f.Required,
		})
	}
	return entities.ContractTemplate{
		ID:              it.ID,
		Name:            it.Name,
		BaseDocumentRef: it.BaseDocumentRef,
		Fields:          fields,
		CreatedAt:       createdAt,
	}
}
