package models

import "github.com/pkg/errors"

type BoardStatus string

const (
	BoardStatusDraft     BoardStatus = "draft"
	BoardStatusScheduled BoardStatus = "scheduled"
	BoardStatusActive    BoardStatus = "active"
	BoardStatusCompleted BoardStatus = "completed"
)

// допустимые переходы статуса комиссии
var boardStatusTransitions = map[BoardStatus][]BoardStatus{
	BoardStatusDraft:     {BoardStatusScheduled, BoardStatusActive},
	BoardStatusScheduled: {BoardStatusActive, BoardStatusDraft},
	BoardStatusActive:    {BoardStatusCompleted},
	BoardStatusCompleted: {},
}

func (s BoardStatus) IsValid() bool {
	_, ok := boardStatusTransitions[s]
	return ok
}

func (s BoardStatus) IsAllowStatusChange(newStatus BoardStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, errors.New("неизвестный статус комиссии")
	}
	if s == newStatus {
		return false, nil
	}
	for _, allowed := range boardStatusTransitions[s] {
		if allowed == newStatus {
			return true, nil
		}
	}
	return false, errors.Errorf("смена статуса комиссии недоступна (%v -> %v)", s, newStatus)
}

type AssessmentStatus string

const (
	AssessmentStatusNotStarted AssessmentStatus = "not_started"
	AssessmentStatusInProgress AssessmentStatus = "in_progress"
	AssessmentStatusCompleted  AssessmentStatus = "completed"
)
