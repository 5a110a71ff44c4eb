package models

import "fmt"

// MilestoneActionKind tags the variant carried by a MilestoneAction.
type MilestoneActionKind string

const (
	SEND_NOTIFICATION MilestoneActionKind = "SEND_NOTIFICATION"
	AUTO_CLAIM        MilestoneActionKind = "AUTO_CLAIM"
	AUTO_PAUSE        MilestoneActionKind = "AUTO_PAUSE"
	AUTO_TOP_UP       MilestoneActionKind = "AUTO_TOP_UP"
)

// MilestoneAction is the effect a milestone performs when it fires.
// Message is only meaningful for SEND_NOTIFICATION, Amount only for AUTO_TOP_UP.
type MilestoneAction struct {
	Kind    MilestoneActionKind `json:"kind" dynamodbav:"kind"`
	Message string              `json:"message,omitempty" dynamodbav:"message,omitempty"`
	Amount  uint64              `json:"amount,omitempty" dynamodbav:"amount,omitempty"`
}

func NotifyAction(message string) MilestoneAction {
	return MilestoneAction{Kind: SEND_NOTIFICATION, Message: message}
}

func AutoClaimAction() MilestoneAction { return MilestoneAction{Kind: AUTO_CLAIM} }

func AutoPauseAction() MilestoneAction { return MilestoneAction{Kind: AUTO_PAUSE} }

func AutoTopUpAction(amount uint64) MilestoneAction {
	return MilestoneAction{Kind: AUTO_TOP_UP, Amount: amount}
}

// Validate rejects unknown kinds and payloads that don't belong to the variant.
func (a MilestoneAction) Validate() error {
	switch a.Kind {
	case SEND_NOTIFICATION:
		if a.Amount != 0 {
			return fmt.Errorf("notification action does not take an amount")
		}
	case AUTO_CLAIM, AUTO_PAUSE:
		if a.Message != "" || a.Amount != 0 {
			return fmt.Errorf("%s action takes no payload", a.Kind)
		}
	case AUTO_TOP_UP:
		if a.Message != "" {
			return fmt.Errorf("top-up action does not take a message")
		}
		if a.Amount == 0 {
			return fmt.Errorf("top-up action requires a positive amount")
		}
	default:
		return fmt.Errorf("unknown milestone action %q", a.Kind)
	}
	return nil
}

// Milestone is a one-shot threshold rule on a stream's released amount.
type Milestone struct {
	Id            uint64          `json:"id" dynamodbav:"id"`
	StreamId      uint64          `json:"stream_id" dynamodbav:"stream_id"`
	TriggerAmount uint64          `json:"trigger_amount" dynamodbav:"trigger_amount"`
	Action        MilestoneAction `json:"action" dynamodbav:"action"`
	Triggered     bool            `json:"triggered" dynamodbav:"triggered"`
	TriggeredAt   uint64          `json:"triggered_at,omitempty" dynamodbav:"triggered_at,omitempty"`
	CreatedBy     string          `json:"created_by" dynamodbav:"created_by"`
}
