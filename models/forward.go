package models

import "fmt"

// ForwardPayload is the JSON body posted to the automation webhook.
type ForwardPayload struct {
	UserID     string         `json:"userId"`
	UserName   string         `json:"userName"`
	ChannelID  string         `json:"channelId"`
	History    []ContextEntry `json:"history"`
	Type       EventCategory  `json:"type"`
	ThreadID   string         `json:"threadId,omitempty"`
	ThreadName string         `json:"threadName,omitempty"`
}

type ForwardStatus string

const (
	ForwardStatusDelivered ForwardStatus = "delivered"
	ForwardStatusRejected  ForwardStatus = "rejected"
	ForwardStatusFailed    ForwardStatus = "failed"
)

// ForwardOutcome is the result of one delivery attempt. StatusCode is set for
// delivered and rejected outcomes, Err only for failed ones.
type ForwardOutcome struct {
	Status     ForwardStatus
	StatusCode int
	Err        error
}

func Delivered(statusCode int) ForwardOutcome {
	return ForwardOutcome{Status: ForwardStatusDelivered, StatusCode: statusCode}
}

func Rejected(statusCode int) ForwardOutcome {
	return ForwardOutcome{Status: ForwardStatusRejected, StatusCode: statusCode}
}

func Failed(err error) ForwardOutcome {
	return ForwardOutcome{Status: ForwardStatusFailed, Err: err}
}

func (o ForwardOutcome) String() string {
	switch o.Status {
	case ForwardStatusDelivered, ForwardStatusRejected:
		return fmt.Sprintf("%s (%d)", o.Status, o.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", o.Status, o.Err)
	}
}
