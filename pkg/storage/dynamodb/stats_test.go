package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statsKey(in *dynamodb.UpdateItemInput) string {
	return in.Key["pk"].(*types.AttributeValueMemberS).Value
}

func TestRecordStreamCreated(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		for _, pk := range []string{"GLOBAL", "USER#alice", "USER#bob"} {
			mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
				return statsKey(in) == pk
			})).Once().Return(&dynamodb.UpdateItemOutput{}, nil)
		}

		err := store.RecordStreamCreated(context.Background(), "alice", "bob", 1000, 100)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		err := store.RecordStreamCreated(context.Background(), "alice", "bob", 1000, 100)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update stats row GLOBAL")
		mockClient.AssertNumberOfCalls(t, "UpdateItem", 1)
	})
}

func TestGetGlobalStats(t *testing.T) {
	t.Run("Derives Active And Average", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"pk":                    &types.AttributeValueMemberS{Value: "GLOBAL"},
			"total_streams_created": number(4),
			"completed_streams":     number(1),
			"cancelled_streams":     number(1),
			"total_duration":        number(1000),
		}}, nil)

		stats, err := store.GetGlobalStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, uint64(2), stats.ActiveStreams)
		assert.Equal(t, uint64(250), stats.AverageStreamDuration)
	})

	t.Run("Empty Table", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		stats, err := store.GetGlobalStats(context.Background())

		require.NoError(t, err)
		assert.Zero(t, stats.TotalStreamsCreated)
		assert.Zero(t, stats.AverageStreamDuration)
	})
}

func TestGetUserStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"user":            &types.AttributeValueMemberS{Value: "alice"},
			"streams_created": number(2),
			"total_sent":      number(1500),
		}}, nil)

		stats, err := store.GetUserStats(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", stats.User)
		assert.Equal(t, uint64(750), stats.AvgStreamSize)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetUserStats(context.Background(), "nobody")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
