package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

func (s *Store) CreateTemplate(ctx context.Context, t *models.StreamTemplate) (uint64, error) {
	id, err := s.nextID(ctx, templateCounter)
	if err != nil {
		return 0, err
	}

	c := *t
	c.Id = id
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal template: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Templates),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create template in DynamoDB: %w", err)
	}

	return id, nil
}

func (s *Store) GetTemplate(ctx context.Context, id uint64) (*models.StreamTemplate, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Templates),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get template from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("template with ID %d: %w", id, storage.ErrNotFound)
	}

	var t models.StreamTemplate
	if err := attributevalue.UnmarshalMap(result.Item, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	return &t, nil
}

// ListTemplates scans the whole table; templates are few and shared.
func (s *Store) ListTemplates(ctx context.Context) ([]models.StreamTemplate, error) {
	items, err := s.scanAll(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Templates),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates table: %w", err)
	}

	var templates []models.StreamTemplate
	if err := attributevalue.UnmarshalListOfMaps(items, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal templates: %w", err)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Id < templates[j].Id })
	return templates, nil
}

func (s *Store) IncrementTemplateUsage(ctx context.Context, id uint64) (*models.StreamTemplate, error) {
	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Templates),
		Key:                 idKey(id),
		UpdateExpression:    aws.String("ADD usage_count :one"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, fmt.Errorf("template with ID %d: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update template usage in DynamoDB: %w", err)
	}

	var t models.StreamTemplate
	if err := attributevalue.UnmarshalMap(out.Attributes, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	return &t, nil
}
