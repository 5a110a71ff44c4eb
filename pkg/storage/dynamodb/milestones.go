package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

const milestoneStreamIndex = "stream_id-index"

// AddMilestone allocates the next milestone id and stores m under it.
func (s *Store) AddMilestone(ctx context.Context, m *models.Milestone) (uint64, error) {
	id, err := s.nextID(ctx, milestoneCounter)
	if err != nil {
		return 0, err
	}

	c := *m
	c.Id = id
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal milestone: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Milestones),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create milestone in DynamoDB: %w", err)
	}

	return id, nil
}

func (s *Store) ListMilestones(ctx context.Context, streamID uint64) ([]models.Milestone, error) {
	return s.queryMilestones(ctx, streamID, false)
}

func (s *Store) queryMilestones(ctx context.Context, streamID uint64, pendingOnly bool) ([]models.Milestone, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Milestones),
		IndexName:              aws.String(milestoneStreamIndex),
		KeyConditionExpression: aws.String("stream_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": number(streamID),
		},
	}
	if pendingOnly {
		input.FilterExpression = aws.String("triggered = :false")
		input.ExpressionAttributeValues[":false"] = &types.AttributeValueMemberBOOL{Value: false}
	}

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones for stream %d: %w", streamID, err)
	}

	var milestones []models.Milestone
	if err := attributevalue.UnmarshalListOfMaps(items, &milestones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal milestones: %w", err)
	}
	sort.Slice(milestones, func(i, j int) bool { return milestones[i].Id < milestones[j].Id })
	return milestones, nil
}

// AccrueStream writes the stream and every fired milestone latch in one
// TransactWriteItems call. The stream put is conditioned on its version and each
// latch on the milestone still being untriggered, so a concurrent tick loses
// cleanly and is retried against fresh state.
func (s *Store) AccrueStream(ctx context.Context, id uint64, fn storage.AccrualFunc) (*models.Stream, []models.Milestone, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := s.GetStream(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		pending, err := s.queryMilestones(ctx, id, true)
		if err != nil {
			return nil, nil, err
		}

		next := current.Clone()
		fired, err := fn(next, pending)
		if err != nil {
			return nil, nil, err
		}
		next.Id = id
		next.Version = current.Version + 1

		input, err := s.accrualTransaction(next, current.Version, pending, fired)
		if err != nil {
			return nil, nil, err
		}

		_, err = s.Client.TransactWriteItems(ctx, input)
		if err == nil {
			for i := range fired {
				fired[i].Triggered = true
			}
			return next, fired, nil
		}
		if !isTransactionConflict(err) {
			return nil, nil, fmt.Errorf("failed to execute accrual transaction: %w", err)
		}
	}

	return nil, nil, fmt.Errorf("stream %d: %w", id, storage.ErrConflict)
}

func (s *Store) accrualTransaction(next *models.Stream, version int64, pending, fired []models.Milestone) (*dynamodb.TransactWriteItemsInput, error) {
	isPending := make(map[uint64]bool, len(pending))
	for _, m := range pending {
		isPending[m.Id] = true
	}

	streamAV, err := attributevalue.MarshalMap(next)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stream: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Streams),
				Item:                streamAV,
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
				},
			},
		},
	}

	for _, m := range fired {
		if !isPending[m.Id] {
			return nil, fmt.Errorf("milestone %d is not pending on stream %d: %w", m.Id, next.Id, storage.ErrConflict)
		}
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.Tables.Milestones),
				Key:                 idKey(m.Id),
				UpdateExpression:    aws.String("SET triggered = :true, triggered_at = :at"),
				ConditionExpression: aws.String("triggered = :false AND stream_id = :sid"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":  &types.AttributeValueMemberBOOL{Value: true},
					":false": &types.AttributeValueMemberBOOL{Value: false},
					":at":    number(m.TriggeredAt),
					":sid":   number(next.Id),
				},
			},
		})
	}

	return &dynamodb.TransactWriteItemsInput{TransactItems: items}, nil
}
