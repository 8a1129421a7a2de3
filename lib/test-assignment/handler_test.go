package assignmenthandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	assignmentapimodels "eval-board-backend/models/api/assignment"
	dbmodels "eval-board-backend/models/db"
)

func TestGenerateForCandidates(t *testing.T) {
	testID := 5
	jobsByID := map[int]dbmodels.Job{
		10: {JobID: 10, TestID: &testID},
		11: {JobID: 11}, // без теста
	}

	t.Run(`назначения только по вакансиям с тестом check`, func(t *testing.T) {
		store := &fakeAssignmentStore{}
		i := impl{
			store:         store,
			sequenceStore: &fakeSequenceStore{next: 100},
			expiryDays:    30,
		}
		refs := []models.CandidateJobRef{
			{CandidateID: "cand-1", JobID: 10},
			{CandidateID: "cand-2", JobID: 10},
			{CandidateID: "cand-3", JobID: 11},
		}
		list, err := i.GenerateForCandidates("board-1", refs, jobsByID)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Len(t, store.created, 2)
		for _, rec := range list {
			require.Equal(t, testID, rec.TestID)
			require.Equal(t, 10, rec.JobID)
			require.Equal(t, models.AssignmentStatusActive, rec.AssignmentStatus)
			require.Equal(t, models.CompletionStatusPending, rec.CompletionStatus)
			require.NotNil(t, rec.BoardID)
			require.Equal(t, "board-1", *rec.BoardID)
		}
	})

	t.Run(`сквозные последовательные номера check`, func(t *testing.T) {
		i := impl{
			store:         &fakeAssignmentStore{},
			sequenceStore: &fakeSequenceStore{next: 100},
			expiryDays:    30,
		}
		refs := []models.CandidateJobRef{
			{CandidateID: "cand-1", JobID: 10},
			{CandidateID: "cand-2", JobID: 10},
		}
		list, err := i.GenerateForCandidates("board-1", refs, jobsByID)
		require.Nil(t, err)
		require.Equal(t, 100, list[0].AssignmentID)
		require.Equal(t, 101, list[1].AssignmentID)
	})

	t.Run(`срок прохождения check`, func(t *testing.T) {
		i := impl{
			store:         &fakeAssignmentStore{},
			sequenceStore: &fakeSequenceStore{next: 1},
			expiryDays:    30,
		}
		refs := []models.CandidateJobRef{{CandidateID: "cand-1", JobID: 10}}
		list, err := i.GenerateForCandidates("board-1", refs, jobsByID)
		require.Nil(t, err)
		expected := list[0].ScheduledDate.AddDate(0, 0, 30)
		require.WithinDuration(t, expected, list[0].ExpiryDate, time.Second)
	})

	t.Run(`без подходящих кандидатов номера не расходуются check`, func(t *testing.T) {
		seq := &fakeSequenceStore{next: 1}
		i := impl{
			store:         &fakeAssignmentStore{},
			sequenceStore: seq,
			expiryDays:    30,
		}
		refs := []models.CandidateJobRef{{CandidateID: "cand-3", JobID: 11}}
		list, err := i.GenerateForCandidates("board-1", refs, jobsByID)
		require.Nil(t, err)
		require.Empty(t, list)
		require.Equal(t, 0, seq.calls)
	})
}

func TestChangeStatus(t *testing.T) {
	t.Run(`назначение не найдено check`, func(t *testing.T) {
		i := impl{store: &fakeAssignmentStore{}}
		err := i.ChangeStatus(404, assignmentapimodels.StatusChangeData{Status: models.AssignmentStatusCompleted})
		require.NotNil(t, err)
		require.ErrorIs(t, err, apimodels.ErrNotFound)
	})

	t.Run(`недопустимый переход check`, func(t *testing.T) {
		store := &fakeAssignmentStore{rec: &dbmodels.TestAssignment{
			AssignmentID:     1,
			AssignmentStatus: models.AssignmentStatusCancelled,
		}}
		i := impl{store: store}
		err := i.ChangeStatus(1, assignmentapimodels.StatusChangeData{Status: models.AssignmentStatusCompleted})
		require.NotNil(t, err)
		require.Nil(t, store.updated)
	})

	t.Run(`завершение фиксирует результат check`, func(t *testing.T) {
		store := &fakeAssignmentStore{rec: &dbmodels.TestAssignment{
			AssignmentID:     1,
			AssignmentStatus: models.AssignmentStatusActive,
		}}
		i := impl{store: store}
		score := 87.5
		err := i.ChangeStatus(1, assignmentapimodels.StatusChangeData{
			Status: models.AssignmentStatusCompleted,
			Score:  &score,
		})
		require.Nil(t, err)
		require.Equal(t, models.AssignmentStatusCompleted, store.updated["assignment_status"])
		require.Equal(t, models.CompletionStatusCompleted, store.updated["completion_status"])
		require.Equal(t, score, store.updated["score"])
	})
}

type fakeAssignmentStore struct {
	created []dbmodels.TestAssignment
	rec     *dbmodels.TestAssignment
	updated map[string]interface{}
}

func (f *fakeAssignmentStore) CreateBatch(recs []dbmodels.TestAssignment) error {
	f.created = append(f.created, recs...)
	return nil
}

func (f *fakeAssignmentStore) GetByAssignmentID(assignmentID int) (*dbmodels.TestAssignment, error) {
	if f.rec != nil && f.rec.AssignmentID == assignmentID {
		return f.rec, nil
	}
	return nil, nil
}

func (f *fakeAssignmentStore) Update(assignmentID int, updMap map[string]interface{}) error {
	f.updated = updMap
	return nil
}

func (f *fakeAssignmentStore) ListByBoard(boardID string) ([]dbmodels.TestAssignment, error) {
	return nil, nil
}
func (f *fakeAssignmentStore) ListByJobIDs(jobIDs []int) ([]dbmodels.TestAssignment, error) {
	return nil, nil
}
func (f *fakeAssignmentStore) SetBoardID(ids []string, boardID string) error { return nil }
func (f *fakeAssignmentStore) ListCount(filter dbmodels.AssignmentFilter) (int64, error) {
	return 0, nil
}
func (f *fakeAssignmentStore) List(filter dbmodels.AssignmentFilter, page, limit int) ([]dbmodels.TestAssignment, error) {
	return nil, nil
}

type fakeSequenceStore struct {
	next  int
	calls int
}

func (f *fakeSequenceStore) NextBatch(name string, n int) (int, error) {
	f.calls++
	first := f.next
	f.next += n
	return first, nil
}
