package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// Stats live in one table: a single global row plus one row per principal.
// Only raw totals are stored; active counts and averages are derived on read.
const globalStatsKey = "GLOBAL"

func userStatsKey(user string) string { return "USER#" + user }

func (s *Store) addStats(ctx context.Context, pk, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Stats),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
		},
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to update stats row %s: %w", pk, err)
	}
	return nil
}

func (s *Store) addUserStats(ctx context.Context, user, expr string, values map[string]types.AttributeValue) error {
	values[":user"] = &types.AttributeValueMemberS{Value: user}
	return s.addStats(ctx, userStatsKey(user), "SET #user = :user "+expr, map[string]string{"#user": "user"}, values)
}

func (s *Store) RecordStreamCreated(ctx context.Context, sender, recipient string, locked, duration uint64) error {
	err := s.addStats(ctx, globalStatsKey,
		"ADD total_streams_created :one, total_volume_locked :locked, total_duration :duration", nil,
		map[string]types.AttributeValue{
			":one":      number(1),
			":locked":   number(locked),
			":duration": number(duration),
		})
	if err != nil {
		return err
	}

	err = s.addUserStats(ctx, sender, "ADD streams_created :one, total_sent :locked",
		map[string]types.AttributeValue{
			":one":    number(1),
			":locked": number(locked),
		})
	if err != nil {
		return err
	}

	return s.addUserStats(ctx, recipient, "ADD streams_received :one",
		map[string]types.AttributeValue{":one": number(1)})
}

func (s *Store) RecordStreamClaimed(ctx context.Context, recipient string, amount uint64) error {
	err := s.addStats(ctx, globalStatsKey, "ADD total_volume_claimed :amount", nil,
		map[string]types.AttributeValue{":amount": number(amount)})
	if err != nil {
		return err
	}
	return s.addUserStats(ctx, recipient, "ADD total_received :amount",
		map[string]types.AttributeValue{":amount": number(amount)})
}

func (s *Store) RecordStreamCancelled(ctx context.Context, sender string, fee uint64) error {
	err := s.addStats(ctx, globalStatsKey, "ADD cancelled_streams :one, total_fees_collected :fee", nil,
		map[string]types.AttributeValue{
			":one": number(1),
			":fee": number(fee),
		})
	if err != nil {
		return err
	}
	return s.addUserStats(ctx, sender, "ADD total_fees_paid :fee",
		map[string]types.AttributeValue{":fee": number(fee)})
}

func (s *Store) RecordStreamCompleted(ctx context.Context) error {
	return s.addStats(ctx, globalStatsKey, "ADD completed_streams :one", nil,
		map[string]types.AttributeValue{":one": number(1)})
}

func (s *Store) GetGlobalStats(ctx context.Context) (*models.StreamStats, error) {
	item, err := s.getStatsRow(ctx, globalStatsKey)
	if err != nil {
		return nil, err
	}

	var stats models.StreamStats
	if item != nil {
		if err := attributevalue.UnmarshalMap(item, &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal global stats: %w", err)
		}
	}

	finished := accrual.SaturatingAdd(stats.CompletedStreams, stats.CancelledStreams)
	stats.ActiveStreams = accrual.SaturatingSub(stats.TotalStreamsCreated, finished)
	if stats.TotalStreamsCreated > 0 {
		stats.AverageStreamDuration = stats.TotalDuration / stats.TotalStreamsCreated
	}
	return &stats, nil
}

func (s *Store) GetUserStats(ctx context.Context, user string) (*models.UserStats, error) {
	item, err := s.getStatsRow(ctx, userStatsKey(user))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("stats for user %s: %w", user, storage.ErrNotFound)
	}

	var stats models.UserStats
	if err := attributevalue.UnmarshalMap(item, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user stats: %w", err)
	}
	if stats.StreamsCreated > 0 {
		stats.AvgStreamSize = stats.TotalSent / stats.StreamsCreated
	}
	return &stats, nil
}

func (s *Store) getStatsRow(ctx context.Context, pk string) (map[string]types.AttributeValue, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Stats),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get stats from DynamoDB: %w", err)
	}
	return result.Item, nil
}
