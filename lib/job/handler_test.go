package jobhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	jobapimodels "eval-board-backend/models/api/job"
	dbmodels "eval-board-backend/models/db"
)

func TestHasVacancy(t *testing.T) {
	t.Run(`вакансия не найдена - мест нет check`, func(t *testing.T) {
		i := impl{
			store:          &fakeJobStore{},
			candidateStore: &fakeCandidateStore{},
		}
		ok, err := i.HasVacancy(nil, 10, "")
		require.Nil(t, err)
		require.False(t, ok)
	})

	t.Run(`нулевой лимит - без ограничения check`, func(t *testing.T) {
		i := impl{
			store: &fakeJobStore{jobs: map[int]dbmodels.Job{
				10: {JobID: 10, VacancyCount: 0},
			}},
			candidateStore: &fakeCandidateStore{bound: 1000},
		}
		ok, err := i.HasVacancy(nil, 10, "")
		require.Nil(t, err)
		require.True(t, ok)
	})

	t.Run(`граница лимита check`, func(t *testing.T) {
		i := impl{
			store: &fakeJobStore{jobs: map[int]dbmodels.Job{
				10: {JobID: 10, VacancyCount: 3},
			}},
			candidateStore: &fakeCandidateStore{bound: 2},
		}
		ok, err := i.HasVacancy(nil, 10, "")
		require.Nil(t, err)
		require.True(t, ok)

		i.candidateStore = &fakeCandidateStore{bound: 3}
		ok, err = i.HasVacancy(nil, 10, "")
		require.Nil(t, err)
		require.False(t, ok)
	})

	t.Run(`сам кандидат не занимает место при обновлении check`, func(t *testing.T) {
		cStore := &fakeCandidateStore{bound: 1}
		i := impl{
			store: &fakeJobStore{jobs: map[int]dbmodels.Job{
				10: {JobID: 10, VacancyCount: 2},
			}},
			candidateStore: cStore,
		}
		ok, err := i.HasVacancy(nil, 10, "cand-1")
		require.Nil(t, err)
		require.True(t, ok)
		require.Equal(t, "cand-1", cStore.lastExcluded)
	})
}

func TestCreate(t *testing.T) {
	t.Run(`повторный идентификатор вакансии check`, func(t *testing.T) {
		i := impl{
			store: &fakeJobStore{jobs: map[int]dbmodels.Job{
				10: {JobID: 10},
			}},
			candidateStore: &fakeCandidateStore{},
		}
		id, hMsg, err := i.Create(jobData(10))
		require.Nil(t, err)
		require.Equal(t, "вакансия с таким идентификатором уже существует", hMsg)
		require.Empty(t, id)
	})
}

func jobData(jobID int) jobapimodels.JobData {
	return jobapimodels.JobData{
		JobID:        jobID,
		JobName:      "Лаборант",
		VacancyCount: 1,
	}
}

type fakeJobStore struct {
	jobs map[int]dbmodels.Job
}

func (f *fakeJobStore) Create(rec dbmodels.Job) (string, error) { return "new-id", nil }

func (f *fakeJobStore) GetByJobID(jobID int) (*dbmodels.Job, error) {
	rec, ok := f.jobs[jobID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeJobStore) ListByJobIDs(jobIDs []int) (list []dbmodels.Job, err error) {
	for _, jobID := range jobIDs {
		if rec, ok := f.jobs[jobID]; ok {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeJobStore) Update(jobID int, updMap map[string]interface{}) error { return nil }
func (f *fakeJobStore) Delete(jobID int) error                                { return nil }
func (f *fakeJobStore) ListCount(filter dbmodels.JobFilter) (int64, error)    { return 0, nil }
func (f *fakeJobStore) List(filter dbmodels.JobFilter, page, limit int) ([]dbmodels.Job, error) {
	return nil, nil
}

type fakeCandidateStore struct {
	bound        int64
	lastExcluded string
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error)  { return "", nil }
func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) { return nil, nil }
func (f *fakeCandidateStore) GetByIDs(ids []string) ([]dbmodels.Candidate, error) {
	return nil, nil
}
func (f *fakeCandidateStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeCandidateStore) Delete(id string) error                                { return nil }
func (f *fakeCandidateStore) ListByAppliedJob(jobID int) ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidateStore) CountBoundToJob(jobID int, excludeCandidateID string) (int64, error) {
	f.lastExcluded = excludeCandidateID
	return f.bound, nil
}

func (f *fakeCandidateStore) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	return 0, nil
}
func (f *fakeCandidateStore) List(filter dbmodels.CandidateFilter, page, limit int) ([]dbmodels.Candidate, error) {
	return nil, nil
}
