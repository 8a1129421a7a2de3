package notificationhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"eval-board-backend/config"
	"eval-board-backend/db"
	notificationstore "eval-board-backend/lib/notification/store"
	"eval-board-backend/lib/smtp"
	teststore "eval-board-backend/lib/test/store"
	"eval-board-backend/lib/utils/helpers"
	"eval-board-backend/models"
	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	// Dispatch рассылает уведомления о новых назначениях тестов.
	// Отправка выполняется по принципу best effort: сбой по одному
	// получателю логируется и не прерывает рассылку остальным,
	// результат основной операции не затрагивается.
	Dispatch(assignments []dbmodels.TestAssignment, candidatesByID map[string]dbmodels.Candidate, actorID string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		testStore:   teststore.NewInstance(db.DB),
		logStore:    notificationstore.NewInstance(db.DB),
		sender:      smtp.Instance,
		from:        config.Conf.Notify.From,
		adminEmails: helpers.SplitEmails(config.Conf.Notify.AdminEmails),
	}
}

type impl struct {
	testStore   teststore.Provider
	logStore    notificationstore.Provider
	sender      smtp.Provider
	from        string
	adminEmails []string
}

func (i impl) getLogger(assignmentID int, actorID string) *log.Entry {
	return log.
		WithField("assignment_id", assignmentID).
		WithField("actor_id", actorID)
}

func (i impl) Dispatch(assignments []dbmodels.TestAssignment, candidatesByID map[string]dbmodels.Candidate, actorID string) {
	if len(assignments) == 0 {
		return
	}
	testIDs := make([]int, 0, len(assignments))
	for _, rec := range assignments {
		testIDs = append(testIDs, rec.TestID)
	}
	tests, err := i.testStore.ListByTestIDs(helpers.UniqueInts(testIDs))
	if err != nil {
		log.WithError(err).Error("ошибка получения тестов для рассылки уведомлений")
		return
	}
	testsByID := make(map[int]dbmodels.Test, len(tests))
	for _, rec := range tests {
		testsByID[rec.TestID] = rec
	}
	for _, assignment := range assignments {
		logger := i.getLogger(assignment.AssignmentID, actorID)
		test, ok := testsByID[assignment.TestID]
		if !ok {
			logger.Warn("тест назначения не найден, уведомление пропущено")
			continue
		}
		candidate, ok := candidatesByID[assignment.CandidateID]
		if !ok {
			logger.Warn("кандидат назначения не найден, уведомление пропущено")
			continue
		}
		if candidate.UserEmail == "" {
			// у кандидата нет привязанной учетной записи, уведомлять некого
			continue
		}
		i.notifyCandidate(logger, assignment, test, candidate)
		i.notifyAdmins(logger, assignment, test, candidate, actorID)
	}
}

func (i impl) notifyCandidate(logger *log.Entry, assignment dbmodels.TestAssignment, test dbmodels.Test, candidate dbmodels.Candidate) {
	message := fmt.Sprintf("Вам назначен тест \"%s\". Срок прохождения до %s.",
		test.TestName, assignment.ExpiryDate.Format("02.01.2006"))
	err := i.sender.SendEMail(i.from, candidate.UserEmail, message, "Назначен тест")
	i.journal(logger, models.NotifyRecipientCandidate, candidate.UserEmail, assignment, err)
}

func (i impl) notifyAdmins(logger *log.Entry, assignment dbmodels.TestAssignment, test dbmodels.Test, candidate dbmodels.Candidate, actorID string) {
	message := fmt.Sprintf("Кандидату %s %s назначен тест \"%s\" (назначение №%d, инициатор %s).",
		candidate.LastName, candidate.FirstName, test.TestName, assignment.AssignmentID, actorID)
	for _, email := range i.adminEmails {
		err := i.sender.SendEMail(i.from, email, message, "Новое назначение теста")
		i.journal(logger, models.NotifyRecipientAdmin, email, assignment, err)
	}
}

func (i impl) journal(logger *log.Entry, kind models.NotifyRecipientKind, recipient string, assignment dbmodels.TestAssignment, sendErr error) {
	rec := dbmodels.NotificationLog{
		RecipientKind: kind,
		Recipient:     recipient,
		AssignmentID:  assignment.AssignmentID,
		BoardID:       assignment.BoardID,
		Status:        models.NotifyStatusSent,
	}
	if sendErr != nil {
		logger.WithError(sendErr).Error("ошибка отправки уведомления")
		rec.Status = models.NotifyStatusFailed
		rec.ErrorText = sendErr.Error()
	}
	if err := i.logStore.Save(rec); err != nil {
		logger.WithError(err).Error("ошибка записи в журнал уведомлений")
	}
}
