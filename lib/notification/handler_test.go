package notificationhandler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"eval-board-backend/models"
	dbmodels "eval-board-backend/models/db"
)

func TestDispatch(t *testing.T) {
	testID := 5
	tests := []dbmodels.Test{{TestID: testID, TestName: "Общий тест"}}

	t.Run(`сбой по одному получателю не прерывает рассылку check`, func(t *testing.T) {
		sender := &fakeSender{failFor: "broken@example.com"}
		logStore := &fakeLogStore{}
		i := impl{
			testStore: &fakeTestStore{tests: tests},
			logStore:  logStore,
			sender:    sender,
			from:      "noreply@example.com",
		}
		i.Dispatch(
			assignments(testID, "cand-1", "cand-2"),
			map[string]dbmodels.Candidate{
				"cand-1": candidateWithEmail("cand-1", "broken@example.com"),
				"cand-2": candidateWithEmail("cand-2", "ok@example.com"),
			},
			"actor-1",
		)
		require.Equal(t, []string{"broken@example.com", "ok@example.com"}, sender.sentTo)
		require.Len(t, logStore.saved, 2)
		require.Equal(t, models.NotifyStatusFailed, logStore.saved[0].Status)
		require.NotEmpty(t, logStore.saved[0].ErrorText)
		require.Equal(t, models.NotifyStatusSent, logStore.saved[1].Status)
	})

	t.Run(`кандидат без учетной записи пропускается check`, func(t *testing.T) {
		sender := &fakeSender{}
		logStore := &fakeLogStore{}
		i := impl{
			testStore: &fakeTestStore{tests: tests},
			logStore:  logStore,
			sender:    sender,
			from:      "noreply@example.com",
		}
		i.Dispatch(
			assignments(testID, "cand-1"),
			map[string]dbmodels.Candidate{
				"cand-1": candidateWithEmail("cand-1", ""),
			},
			"actor-1",
		)
		require.Empty(t, sender.sentTo)
		require.Empty(t, logStore.saved)
	})

	t.Run(`рассылка администраторам журналируется check`, func(t *testing.T) {
		sender := &fakeSender{}
		logStore := &fakeLogStore{}
		i := impl{
			testStore:   &fakeTestStore{tests: tests},
			logStore:    logStore,
			sender:      sender,
			from:        "noreply@example.com",
			adminEmails: []string{"admin1@example.com", "admin2@example.com"},
		}
		i.Dispatch(
			assignments(testID, "cand-1"),
			map[string]dbmodels.Candidate{
				"cand-1": candidateWithEmail("cand-1", "ok@example.com"),
			},
			"actor-1",
		)
		// кандидат + два администратора
		require.Len(t, logStore.saved, 3)
		require.Equal(t, models.NotifyRecipientCandidate, logStore.saved[0].RecipientKind)
		require.Equal(t, models.NotifyRecipientAdmin, logStore.saved[1].RecipientKind)
		require.Equal(t, models.NotifyRecipientAdmin, logStore.saved[2].RecipientKind)
	})

	t.Run(`назначение с неизвестным тестом пропускается check`, func(t *testing.T) {
		sender := &fakeSender{}
		i := impl{
			testStore: &fakeTestStore{},
			logStore:  &fakeLogStore{},
			sender:    sender,
			from:      "noreply@example.com",
		}
		i.Dispatch(
			assignments(testID, "cand-1"),
			map[string]dbmodels.Candidate{
				"cand-1": candidateWithEmail("cand-1", "ok@example.com"),
			},
			"actor-1",
		)
		require.Empty(t, sender.sentTo)
	})
}

func assignments(testID int, candidateIDs ...string) []dbmodels.TestAssignment {
	boardID := "board-1"
	list := make([]dbmodels.TestAssignment, 0, len(candidateIDs))
	for idx, candidateID := range candidateIDs {
		list = append(list, dbmodels.TestAssignment{
			AssignmentID: idx + 1,
			CandidateID:  candidateID,
			TestID:       testID,
			BoardID:      &boardID,
			ExpiryDate:   time.Now().AddDate(0, 0, 30),
		})
	}
	return list
}

func candidateWithEmail(id, userEmail string) dbmodels.Candidate {
	rec := dbmodels.Candidate{
		FirstName: "Иван",
		LastName:  "Иванов",
		UserEmail: userEmail,
	}
	rec.ID = id
	return rec
}

type fakeTestStore struct {
	tests []dbmodels.Test
}

func (f *fakeTestStore) GetByTestID(testID int) (*dbmodels.Test, error) { return nil, nil }

func (f *fakeTestStore) ListByTestIDs(testIDs []int) ([]dbmodels.Test, error) {
	return f.tests, nil
}

func (f *fakeTestStore) Save(rec dbmodels.Test) (string, error) { return "", nil }

type fakeLogStore struct {
	saved []dbmodels.NotificationLog
}

func (f *fakeLogStore) Save(rec dbmodels.NotificationLog) error {
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeLogStore) ListByAssignment(assignmentID int) ([]dbmodels.NotificationLog, error) {
	return nil, nil
}

type fakeSender struct {
	failFor string
	sentTo  []string
}

func (f *fakeSender) SendEMail(from, to, message, subject string) error {
	f.sentTo = append(f.sentTo, to)
	if f.failFor != "" && to == f.failFor {
		return errors.New("smtp: connection refused")
	}
	return nil
}
