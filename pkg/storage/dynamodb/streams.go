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

const (
	senderIndex    = "sender-index"
	recipientIndex = "recipient-index"
	statusIndex    = "status-index"
)

// InsertStream allocates the next stream id and stores s under it.
func (s *Store) InsertStream(ctx context.Context, stream *models.Stream) (uint64, error) {
	id, err := s.nextID(ctx, streamCounter)
	if err != nil {
		return 0, err
	}

	c := stream.Clone()
	c.Id = id
	c.Version = 1

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal stream: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Streams),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return 0, fmt.Errorf("stream %d already exists: %w", id, storage.ErrConflict)
		}
		return 0, fmt.Errorf("failed to create stream in DynamoDB: %w", err)
	}

	return id, nil
}

// GetStream retrieves a stream from DynamoDB by its ID.
func (s *Store) GetStream(ctx context.Context, id uint64) (*models.Stream, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Streams),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get stream from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("stream with ID %d: %w", id, storage.ErrNotFound)
	}

	var stream models.Stream
	if err := attributevalue.UnmarshalMap(result.Item, &stream); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stream: %w", err)
	}

	return &stream, nil
}

// UpdateStream reads the stream, applies fn and writes it back conditioned on the
// version it read. A lost race is retried against the fresh record.
func (s *Store) UpdateStream(ctx context.Context, id uint64, fn storage.StreamMutator) (*models.Stream, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := s.GetStream(ctx, id)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		next.Id = id
		next.Version = current.Version + 1

		err = s.putStreamAt(ctx, next, current.Version)
		if err == nil {
			return next, nil
		}
		if !isConditionFailed(err) {
			return nil, fmt.Errorf("failed to update stream in DynamoDB: %w", err)
		}
	}

	return nil, fmt.Errorf("stream %d: %w", id, storage.ErrConflict)
}

func (s *Store) putStreamAt(ctx context.Context, stream *models.Stream, version int64) error {
	item, err := attributevalue.MarshalMap(stream)
	if err != nil {
		return fmt.Errorf("failed to marshal stream: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Streams),
		Item:                item,
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		},
	})
	return err
}

// ListStreamsByParticipant merges the sender and recipient indexes.
func (s *Store) ListStreamsByParticipant(ctx context.Context, principal string) ([]models.Stream, error) {
	seen := make(map[uint64]bool)
	var streams []models.Stream

	for _, index := range []struct{ name, attr string }{
		{senderIndex, "sender"},
		{recipientIndex, "recipient"},
	} {
		items, err := s.queryAll(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.Tables.Streams),
			IndexName:              aws.String(index.name),
			KeyConditionExpression: aws.String("#p = :principal"),
			ExpressionAttributeNames: map[string]string{
				"#p": index.attr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":principal": &types.AttributeValueMemberS{Value: principal},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query streams by %s: %w", index.attr, err)
		}

		var page []models.Stream
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal streams: %w", err)
		}
		for _, stream := range page {
			if seen[stream.Id] {
				continue
			}
			seen[stream.Id] = true
			streams = append(streams, stream)
		}
	}

	sort.Slice(streams, func(i, j int) bool { return streams[i].Id < streams[j].Id })
	return streams, nil
}

func (s *Store) SearchStreams(ctx context.Context, principal string, filter models.StreamFilter) ([]models.Stream, error) {
	streams, err := s.ListStreamsByParticipant(ctx, principal)
	if err != nil {
		return nil, err
	}

	out := streams[:0]
	for i := range streams {
		if filter.Matches(&streams[i]) {
			out = append(out, streams[i])
		}
	}
	return out, nil
}

// ListActiveStreams retrieves all ACTIVE streams from the status index.
func (s *Store) ListActiveStreams(ctx context.Context) ([]models.Stream, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Streams),
		IndexName:              aws.String(statusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.ACTIVE)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query for active streams: %w", err)
	}

	var streams []models.Stream
	if err := attributevalue.UnmarshalListOfMaps(items, &streams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active streams: %w", err)
	}

	return streams, nil
}
