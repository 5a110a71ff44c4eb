package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

const notificationUserIndex = "user-index"

func (s *Store) AddNotification(ctx context.Context, n *models.Notification) (uint64, error) {
	id, err := s.nextID(ctx, notificationCounter)
	if err != nil {
		return 0, err
	}

	c := *n
	c.Id = id
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Notifications),
		Item:      item,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create notification in DynamoDB: %w", err)
	}

	return id, nil
}

func (s *Store) ListNotifications(ctx context.Context, user string) ([]models.Notification, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Notifications),
		IndexName:              aws.String(notificationUserIndex),
		KeyConditionExpression: aws.String("#user = :user"),
		ExpressionAttributeNames: map[string]string{
			"#user": "user",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications for %s: %w", user, err)
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].Id < notifications[j].Id })
	return notifications, nil
}

// MarkNotificationRead sets the read flag only when user owns the notification.
// On a failed condition the old item tells a missing id apart from a foreign one.
func (s *Store) MarkNotificationRead(ctx context.Context, id uint64, user string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Notifications),
		Key:                 idKey(id),
		UpdateExpression:    aws.String("SET #read = :true"),
		ConditionExpression: aws.String("#user = :user"),
		ExpressionAttributeNames: map[string]string{
			"#read": "read",
			"#user": "user",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
			":user": &types.AttributeValueMemberS{Value: user},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return nil
	}

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		if len(ccf.Item) == 0 {
			return fmt.Errorf("notification %d: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("notification %d: %w", id, storage.ErrNotOwner)
	}
	return fmt.Errorf("failed to update notification in DynamoDB: %w", err)
}
