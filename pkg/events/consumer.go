package events

import (
	"context"
	"log/slog"

	lambdaevents "github.com/aws/aws-lambda-go/events"
)

// HandleSQSEvent delivers every record of an SQS batch to sink. Records that
// cannot be decoded are logged and dropped, since redelivery would not help.
// Records the sink rejects are reported back so that only they are retried.
func HandleSQSEvent(ctx context.Context, sink Sink, batch lambdaevents.SQSEvent) lambdaevents.SQSEventResponse {
	var resp lambdaevents.SQSEventResponse

	for _, message := range batch.Records {
		event, err := DecodeSQSBody(message.Body)
		if err != nil {
			slog.Error("dropping undecodable event", "message_id", message.MessageId, "error", err)
			continue
		}

		if err := sink.Emit(ctx, event); err != nil {
			slog.Error("failed to deliver event",
				"message_id", message.MessageId,
				"kind", event.Kind,
				"stream_id", event.StreamId,
				"error", err,
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, lambdaevents.SQSBatchItemFailure{
				ItemIdentifier: message.MessageId,
			})
		}
	}

	return resp
}
