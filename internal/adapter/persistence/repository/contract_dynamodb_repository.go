package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultContractsTableName = "contracts"
	contractsClientIDIndex    = "client_id-index"
	contractsTemplateIDIndex  = "template_id-index"
)

type contractItem struct {
	ID          string         `dynamodbav:"id"`
	TemplateID  string         `dynamodbav:"template_id"`
	ClientID    string         `dynamodbav:"client_id"`
	ClientName  string         `dynamodbav:"client_name"`
	ClientEmail string         `dynamodbav:"client_email"`
	Status      string         `dynamodbav:"status"`
	FieldValues map[string]any `dynamodbav:"field_values"`

	OTPCode      string `dynamodbav:"otp_code,omitempty"`
	OTPExpiresAt string `dynamodbav:"otp_expires_at,omitempty"`

	SignedAt          string `dynamodbav:"signed_at,omitempty"`
	SignedDocumentRef string `dynamodbav:"signed_document_ref,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	SentAt    string `dynamodbav:"sent_at"`
}

// ContractDynamoRepository persists Contract entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//   - GSI: template_id-index (PK: template_id)
//
// Every mutation is an UpdateItem guarded by a ConditionExpression; a failed
// condition maps to a zero-value Contract, never an error. That contract is
// what lets two concurrent sign calls resolve to a single winner.

type ContractDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IContractRepository = (*ContractDynamoRepository)(nil)

func NewContractDynamoRepository(ddb *dynamodb.Client) *ContractDynamoRepository {
	return &ContractDynamoRepository{
		ddb:       ddb,
		tableName: tableName("CONTRACTS_TABLE", defaultContractsTableName),
	}
}

func (r *ContractDynamoRepository) Create(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	it := toContractItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Contract{}, err
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
		return entities.Contract{}, err
	}
	return c, nil
}

func (r *ContractDynamoRepository) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Contract{}, err
	}
	if len(out.Item) == 0 {
		return entities.Contract{}, nil
	}

	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Contract{}, err
	}
	return fromContractItem(it), nil
}

func (r *ContractDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Contract, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(contractsClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalContracts(out.Items)
}

func (r *ContractDynamoRepository) ListByTemplateID(ctx context.Context, templateID string, limit int32) ([]entities.Contract, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(contractsTemplateIDIndex),
		KeyConditionExpression: aws.String("template_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: templateID},
		},
	}
	if limit > 0 {
		in.Limit = aws.Int32(limit)
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalContracts(out.Items)
}

func (r *ContractDynamoRepository) ListAll(ctx context.Context) ([]entities.Contract, error) {
	var items []entities.Contract
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		page, err := unmarshalContracts(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func (r *ContractDynamoRepository) MergeFieldValues(ctx context.Context, id string, values map[string]any) (entities.Contract, error) {
	expr := "SET #status = :filled"
	names := map[string]string{
		"#id":     "id",
		"#status": "status",
	}
	vals := map[string]types.AttributeValue{
		":filled": &types.AttributeValueMemberS{Value: string(entities.ContractStatusFilled)},
		":signed": &types.AttributeValueMemberS{Value: string(entities.ContractStatusSigned)},
	}

	// Deterministic expression order keeps retries byte-identical.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		names["#fv"] = "field_values"
	}
	for i, k := range keys {
		nk := fmt.Sprintf("#f%d", i)
		vk := fmt.Sprintf(":v%d", i)
		av, err := attributevalue.Marshal(values[k])
		if err != nil {
			return entities.Contract{}, err
		}
		expr += fmt.Sprintf(", #fv.%s = %s", nk, vk)
		names[nk] = k
		vals[vk] = av
	}

	return r.update(ctx, id, expr, "attribute_exists(#id) AND #status <> :signed", vals, names)
}

func (r *ContractDynamoRepository) StoreOTP(ctx context.Context, id, code string, expiresAt time.Time) (entities.Contract, error) {
	expr := "SET #otp_code = :code, #otp_expires_at = :exp"
	names := map[string]string{
		"#id":             "id",
		"#status":         "status",
		"#otp_code":       "otp_code",
		"#otp_expires_at": "otp_expires_at",
	}
	vals := map[string]types.AttributeValue{
		":code":   &types.AttributeValueMemberS{Value: code},
		":exp":    &types.AttributeValueMemberS{Value: expiresAt.UTC().Format(time.RFC3339Nano)},
		":signed": &types.AttributeValueMemberS{Value: string(entities.ContractStatusSigned)},
	}

	return r.update(ctx, id, expr, "attribute_exists(#id) AND #status <> :signed", vals, names)
}

func (r *ContractDynamoRepository) FinalizeSignature(ctx context.Context, id, code, signedDocumentRef string, signedAt time.Time) (entities.Contract, error) {
	expr := "SET #status = :signed, #signed_at = :signed_at, #signed_ref = :signed_ref REMOVE #otp_code, #otp_expires_at"
	names := map[string]string{
		"#id":             "id",
		"#status":         "status",
		"#signed_at":      "signed_at",
		"#signed_ref":     "signed_document_ref",
		"#otp_code":       "otp_code",
		"#otp_expires_at": "otp_expires_at",
	}
	vals := map[string]types.AttributeValue{
		":signed":     &types.AttributeValueMemberS{Value: string(entities.ContractStatusSigned)},
		":signed_at":  &types.AttributeValueMemberS{Value: signedAt.UTC().Format(time.RFC3339Nano)},
		":signed_ref": &types.AttributeValueMemberS{Value: signedDocumentRef},
		":code":       &types.AttributeValueMemberS{Value: code},
	}

	// The code-equality condition makes the stored OTP single-use: the
	// winning update removes it, so a second finalize with the same code
	// can no longer match.
	cond := "attribute_exists(#id) AND #status <> :signed AND #otp_code = :code"
	return r.update(ctx, id, expr, cond, vals, names)
}

func (r *ContractDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Contract, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(conditionExpr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Contract{}, nil
		}
		return entities.Contract{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Contract{}, nil
	}

	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Contract{}, err
	}
	return fromContractItem(it), nil
}

func unmarshalContracts(raw []map[string]types.AttributeValue) ([]entities.Contract, error) {
	items := make([]entities.Contract, 0, len(raw))
	for _, m := range raw {
		var it contractItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromContractItem(it))
	}
	return items, nil
}

func toContractItem(c entities.Contract) contractItem {
	it := contractItem{
		ID:                c.ID,
		TemplateID:        c.TemplateID,
		ClientID:          c.ClientID,
		ClientName:        c.ClientName,
		ClientEmail:       c.ClientEmail,
		Status:            string(c.Status),
		FieldValues:       c.FieldValues,
		SignedDocumentRef: c.SignedDocumentRef,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339Nano),
		SentAt:            c.SentAt.UTC().Format(time.RFC3339Nano),
	}
	if it.FieldValues == nil {
		it.FieldValues = map[string]any{}
	}
	if c.OTPCode != nil {
		it.OTPCode = *c.OTPCode
	}
	if c.OTPExpiresAt != nil {
		it.OTPExpiresAt = c.OTPExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	if c.SignedAt != nil {
		it.SignedAt = c.SignedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromContractItem(it contractItem) entities.Contract {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	sentAt, _ := time.Parse(time.RFC3339Nano, it.SentAt)

	c := entities.Contract{
		ID:                it.ID,
		TemplateID:        it.TemplateID,
		ClientID:          it.ClientID,
		ClientName:        it.ClientName,
		ClientEmail:       it.ClientEmail,
		Status:            entities.ContractStatus(it.Status),
		FieldValues:       it.FieldValues,
		SignedDocumentRef: it.SignedDocumentRef,
		CreatedAt:         createdAt,
		SentAt:            sentAt,
	}
	if c.FieldValues == nil {
		c.FieldValues = map[string]any{}
	}
	if it.OTPCode != "" && it.OTPExpiresAt != "" {
		code := it.OTPCode
		if exp, err := time.Parse(time.RFC3339Nano, it.OTPExpiresAt); err == nil {
			c.OTPCode = &code
			c.OTPExpiresAt = &exp
		}
	}
	if it.SignedAt != "" {
		if at, err := time.Parse(time.RFC3339Nano, it.SignedAt); err == nil {
			c.SignedAt = &at
		}
	}
	return c
}
