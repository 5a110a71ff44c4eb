package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTables = Tables{
	Streams:       "streams",
	Milestones:    "milestones",
	Notifications: "notifications",
	Templates:     "templates",
	Stats:         "stats",
	Counters:      "counters",
	Connections:   "connections",
}

func testStream() *models.Stream {
	return &models.Stream{
		Id:              4,
		Sender:          "alice",
		Recipient:       "bob",
		SatsPerSec:      10,
		StartTime:       100,
		EndTime:         200,
		TotalLocked:     1000,
		LastReleaseTime: 100,
		LastClaimTime:   100,
		Status:          models.ACTIVE,
		Version:         3,
	}
}

func streamItem(t *testing.T, s *models.Stream) map[string]types.AttributeValue {
	av, err := attributevalue.MarshalMap(s)
	require.NoError(t, err)
	return av
}

func counterOutput(value string) *dynamodb.UpdateItemOutput {
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"value": &types.AttributeValueMemberN{Value: value},
		},
	}
}

func conflict() error {
	return &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("ConditionalCheckFailed")}},
	}
}

func TestInsertStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.TableName == "counters"
		})).Return(counterOutput("8"), nil)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			var stored models.Stream
			err := attributevalue.UnmarshalMap(in.Item, &stored)
			return err == nil && stored.Id == 7 && stored.Version == 1 && *in.TableName == "streams"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		id, err := store.InsertStream(context.Background(), testStream())

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Counter Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := store.InsertStream(context.Background(), testStream())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to allocate streams id")
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(counterOutput("1"), nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		_, err := store.InsertStream(context.Background(), testStream())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create stream in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestGetStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: streamItem(t, testStream())}, nil)

		got, err := store.GetStream(context.Background(), 4)

		assert.NoError(t, err)
		assert.Equal(t, testStream(), got)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetStream(context.Background(), 4)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		_, err := store.GetStream(context.Background(), 4)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get stream from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestUpdateStream(t *testing.T) {
	topUp := func(s *models.Stream) error {
		s.TotalLocked += 500
		return nil
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: streamItem(t, testStream())}, nil)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			v, ok := in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN)
			return ok && v.Value == "3" && *in.ConditionExpression == "version = :version"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		updated, err := store.UpdateStream(context.Background(), 4, topUp)

		assert.NoError(t, err)
		assert.Equal(t, uint64(1500), updated.TotalLocked)
		assert.Equal(t, int64(4), updated.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Retries Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: streamItem(t, testStream())}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})
		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.PutItemOutput{}, nil)

		_, err := store.UpdateStream(context.Background(), 4, topUp)

		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "GetItem", 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Gives Up After Max Attempts", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: streamItem(t, testStream())}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.UpdateStream(context.Background(), 4, topUp)

		assert.ErrorIs(t, err, storage.ErrConflict)
		mockClient.AssertNumberOfCalls(t, "PutItem", maxAttempts)
	})

	t.Run("Mutator Error Skips Write", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: streamItem(t, testStream())}, nil)
		boom := errors.New("boom")

		_, err := store.UpdateStream(context.Background(), 4, func(s *models.Stream) error { return boom })

		assert.ErrorIs(t, err, boom)
		mockClient.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything)
	})
}

func TestListStreamsByParticipant(t *testing.T) {
	self := testStream()
	self.Id = 1
	self.Recipient = "alice"
	other := testStream()
	other.Id = 0
	other.Sender = "carol"
	other.Recipient = "alice"

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == senderIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{streamItem(t, self)}}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == recipientIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{streamItem(t, self), streamItem(t, other)}}, nil)

		streams, err := store.ListStreamsByParticipant(context.Background(), "alice")

		require.NoError(t, err)
		require.Len(t, streams, 2)
		assert.Equal(t, uint64(0), streams[0].Id)
		assert.Equal(t, uint64(1), streams[1].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Search Applies Filter", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{streamItem(t, self), streamItem(t, other)}}, nil)
		sender := "carol"

		streams, err := store.SearchStreams(context.Background(), "alice", models.StreamFilter{Sender: &sender})

		require.NoError(t, err)
		require.Len(t, streams, 1)
		assert.Equal(t, "carol", streams[0].Sender)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		_, err := store.ListStreamsByParticipant(context.Background(), "alice")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query streams by sender")
	})
}

func TestListActiveStreams(t *testing.T) {
	t.Run("Follows Pagination", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		next := map[string]types.AttributeValue{"id": number(4)}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{streamItem(t, testStream())}, LastEvaluatedKey: next}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{streamItem(t, testStream())}}, nil)

		streams, err := store.ListActiveStreams(context.Background())

		assert.NoError(t, err)
		assert.Len(t, streams, 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		_, err := store.ListActiveStreams(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for active streams")
	})
}
