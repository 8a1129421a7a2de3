package models

import "github.com/pkg/errors"

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusExpired   AssignmentStatus = "expired"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

var assignmentStatusTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentStatusActive:    {AssignmentStatusCompleted, AssignmentStatusExpired, AssignmentStatusCancelled},
	AssignmentStatusCompleted: {},
	AssignmentStatusExpired:   {},
	AssignmentStatusCancelled: {},
}

func (s AssignmentStatus) IsValid() bool {
	_, ok := assignmentStatusTransitions[s]
	return ok
}

func (s AssignmentStatus) IsAllowStatusChange(newStatus AssignmentStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, errors.New("неизвестный статус назначения теста")
	}
	if s == newStatus {
		return false, nil
	}
	for _, allowed := range assignmentStatusTransitions[s] {
		if allowed == newStatus {
			return true, nil
		}
	}
	return false, errors.Errorf("смена статуса назначения недоступна (%v -> %v)", s, newStatus)
}

type CompletionStatus string

const (
	CompletionStatusPending   CompletionStatus = "pending"
	CompletionStatusCompleted CompletionStatus = "completed"
)
