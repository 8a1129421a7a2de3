package models

type NotifyRecipientKind string

const (
	NotifyRecipientCandidate NotifyRecipientKind = "candidate"
	NotifyRecipientAdmin     NotifyRecipientKind = "admin"
)

type NotifyStatus string

const (
	NotifyStatusSent   NotifyStatus = "sent"
	NotifyStatusFailed NotifyStatus = "failed"
)
