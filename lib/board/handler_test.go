package boardhandler

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eval-board-backend/models"
	assignmentapimodels "eval-board-backend/models/api/assignment"
	boardapimodels "eval-board-backend/models/api/board"
	candidateapimodels "eval-board-backend/models/api/candidate"
	dbmodels "eval-board-backend/models/db"
)

func TestCreate(t *testing.T) {
	testID := 5
	jobs := map[int]dbmodels.Job{
		10: {JobID: 10, TestID: &testID},
		11: {JobID: 11},
	}

	t.Run(`формирование комиссии по набору вакансий check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{}}
		assignmentProvider := &fakeAssignmentProvider{
			result: []dbmodels.TestAssignment{
				{AssignmentID: 100, CandidateID: "cand-1", TestID: testID, JobID: 10},
				{AssignmentID: 101, CandidateID: "cand-2", TestID: testID, JobID: 10},
			},
		}
		notify := &fakeNotifyProvider{}
		i := impl{
			store:    boardStore,
			jobStore: &fakeJobStore{jobs: jobs},
			candidateProvider: &fakeCandidateProvider{
				list: []dbmodels.Candidate{candidate("cand-1"), candidate("cand-2"), candidate("cand-3")},
				jobOf: map[string]int{
					"cand-1": 10,
					"cand-2": 10,
					"cand-3": 11,
				},
			},
			assignmentProvider: assignmentProvider,
			notifyProvider:     notify,
		}
		data := boardapimodels.BoardData{
			BoardName: "Комиссия по лаборантам",
			BoardDate: time.Now().AddDate(0, 0, 7),
			JobIDs:    []int{10, 11},
		}
		view, hMsg, err := i.Create(data, "actor-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.BoardStatusDraft, view.Status)
		require.Equal(t, []int{10, 11}, view.JobIDs)
		require.Equal(t, 10, view.JobID)
		require.Len(t, view.Candidates, 3)
		for _, bc := range view.Candidates {
			require.Equal(t, models.AssessmentStatusNotStarted, bc.AssessmentStatus)
		}

		// назначения генерируются по всем кандидатам комиссии
		require.Len(t, assignmentProvider.refs, 3)
		require.Equal(t, 10, assignmentProvider.refs[0].JobID)
		require.Equal(t, 11, assignmentProvider.refs[2].JobID)

		// уведомления уходят по созданным назначениям
		require.Len(t, notify.assignments, 2)
		require.Equal(t, "actor-1", notify.actorID)
	})

	t.Run(`устаревшее скалярное поле вакансии check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{}}
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateProvider:  &fakeCandidateProvider{},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		data := boardapimodels.BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now().AddDate(0, 0, 7),
			JobID:     10, // старый клиент шлет одну вакансию
		}
		view, hMsg, err := i.Create(data, "actor-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []int{10}, view.JobIDs)
		require.Equal(t, 10, view.JobID)
	})

	t.Run(`частично не найденные вакансии пропускаются check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{}}
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateProvider:  &fakeCandidateProvider{},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		data := boardapimodels.BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now().AddDate(0, 0, 7),
			JobIDs:    []int{10, 999},
		}
		view, hMsg, err := i.Create(data, "actor-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []int{10}, view.JobIDs)
	})

	t.Run(`ни одна вакансия не найдена check`, func(t *testing.T) {
		i := impl{
			store:              &fakeBoardStore{boards: map[string]*dbmodels.Board{}},
			jobStore:           &fakeJobStore{},
			candidateProvider:  &fakeCandidateProvider{},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		data := boardapimodels.BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now().AddDate(0, 0, 7),
			JobIDs:    []int{998, 999},
		}
		_, hMsg, err := i.Create(data, "actor-1")
		require.Nil(t, err)
		require.Equal(t, "ни одна из выбранных вакансий не найдена", hMsg)
	})
}

func TestAssignCandidates(t *testing.T) {
	testID := 5
	jobs := map[int]dbmodels.Job{
		10: {JobID: 10, TestID: &testID},
		12: {JobID: 12},
	}

	t.Run(`все кандидаты уже в комиссии check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}, "cand-1", "cand-2"),
		}}
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateStore:     &fakeCandidateStore{},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		result, hMsg, err := i.AssignCandidates("board-1",
			boardapimodels.AssignCandidatesData{CandidateIDs: []string{"cand-1", "cand-2"}}, "actor-1")
		require.Nil(t, err)
		require.Equal(t, "все кандидаты уже состоят в комиссии", hMsg)
		require.Equal(t, 2, result.AlreadyPresent)
		require.Equal(t, 0, result.Assigned)
		require.Empty(t, boardStore.added)
	})

	t.Run(`расширение набора вакансий check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}, "cand-1"),
		}}
		currentJobID := 12
		newCandidate := candidate("cand-new")
		newCandidate.CurrentJobID = &currentJobID
		assignmentProvider := &fakeAssignmentProvider{}
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateStore:     &fakeCandidateStore{candidates: []dbmodels.Candidate{newCandidate}},
			assignmentProvider: assignmentProvider,
			notifyProvider:     &fakeNotifyProvider{},
		}
		result, hMsg, err := i.AssignCandidates("board-1",
			boardapimodels.AssignCandidatesData{CandidateIDs: []string{"cand-new"}}, "actor-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 1, result.Assigned)
		require.Equal(t, []int{12}, result.NewJobs)
		require.Equal(t, []int{10, 12}, boardStore.jobSet)
		require.Len(t, boardStore.added, 1)
		require.Equal(t, 12, boardStore.added[0].JobID)
		// генерация только по новым кандидатам
		require.Len(t, assignmentProvider.refs, 1)
		require.Equal(t, "cand-new", assignmentProvider.refs[0].CandidateID)
	})

	t.Run(`текущая вакансия в приоритете над вакансией отклика check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10, 12}),
		}}
		appliedJobID := 10
		currentJobID := 12
		rec := candidate("cand-new")
		rec.AppliedJobID = &appliedJobID
		rec.CurrentJobID = &currentJobID
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateStore:     &fakeCandidateStore{candidates: []dbmodels.Candidate{rec}},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		result, _, err := i.AssignCandidates("board-1",
			boardapimodels.AssignCandidatesData{CandidateIDs: []string{"cand-new"}}, "actor-1")
		require.Nil(t, err)
		require.Equal(t, 1, result.Assigned)
		require.Equal(t, 12, boardStore.added[0].JobID)
		require.Empty(t, result.NewJobs)
	})

	t.Run(`не найденные кандидаты пропускаются check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}),
		}}
		i := impl{
			store:              boardStore,
			jobStore:           &fakeJobStore{jobs: jobs},
			candidateStore:     &fakeCandidateStore{},
			assignmentProvider: &fakeAssignmentProvider{},
			notifyProvider:     &fakeNotifyProvider{},
		}
		result, hMsg, err := i.AssignCandidates("board-1",
			boardapimodels.AssignCandidatesData{CandidateIDs: []string{"cand-ghost"}}, "actor-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 1, result.Skipped)
		require.Equal(t, 0, result.Assigned)
	})
}

func TestGetBoardCandidates(t *testing.T) {
	t.Run(`дозаполнение board_id на старых назначениях check`, func(t *testing.T) {
		board := boardWithCandidates("board-1", []int{10}, "cand-1")
		assignmentStore := &fakeBoardAssignmentStore{
			byJob: []dbmodels.TestAssignment{
				orphanAssignment("assign-1", "cand-1", 100),
				orphanAssignment("assign-2", "cand-other", 101),
			},
		}
		i := impl{
			store:           &fakeBoardStore{boards: map[string]*dbmodels.Board{"board-1": board}},
			assignmentStore: assignmentStore,
		}
		list, err := i.GetBoardCandidates("board-1")
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].TestScores)
		require.Equal(t, 100, list[0].TestScores.AssignmentID)
		// чужое назначение не дозаполняется
		require.Equal(t, []string{"assign-1"}, assignmentStore.backfilled)
	})

	t.Run(`баллы только по завершенным тестам check`, func(t *testing.T) {
		board := boardWithCandidates("board-1", []int{10}, "cand-1", "cand-2")
		score := 87.5
		maxScore := 100.0
		boardID := "board-1"
		assignmentStore := &fakeBoardAssignmentStore{
			byBoard: []dbmodels.TestAssignment{
				{
					AssignmentID:     100,
					CandidateID:      "cand-1",
					BoardID:          &boardID,
					CompletionStatus: models.CompletionStatusCompleted,
					Score:            &score,
					MaxScore:         &maxScore,
				},
				{
					AssignmentID:     101,
					CandidateID:      "cand-2",
					BoardID:          &boardID,
					CompletionStatus: models.CompletionStatusPending,
					Score:            &score,
				},
			},
		}
		i := impl{
			store:           &fakeBoardStore{boards: map[string]*dbmodels.Board{"board-1": board}},
			assignmentStore: assignmentStore,
		}
		list, err := i.GetBoardCandidates("board-1")
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.NotNil(t, list[0].TestScores.Score)
		require.Equal(t, score, *list[0].TestScores.Score)
		require.Nil(t, list[1].TestScores.Score)
	})
}

func TestSaveAssessment(t *testing.T) {
	t.Run(`оценка без решения - статус в работе check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}, "cand-1"),
		}}
		assessmentStore := &fakeAssessmentStore{}
		i := impl{store: boardStore, assessmentStore: assessmentStore}
		err := i.SaveAssessment("board-1", "cand-1", boardapimodels.AssessmentData{
			EvaluatorID: "eval-1",
			Score:       4,
		})
		require.Nil(t, err)
		require.Len(t, assessmentStore.saved, 1)
		require.Equal(t, models.AssessmentStatusInProgress, boardStore.candidateStatus["assessment_status"])
	})

	t.Run(`оценка с решением завершает check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}, "cand-1"),
		}}
		i := impl{store: boardStore, assessmentStore: &fakeAssessmentStore{}}
		err := i.SaveAssessment("board-1", "cand-1", boardapimodels.AssessmentData{
			EvaluatorID: "eval-1",
			Score:       5,
			Decision:    models.HiringStatusHired,
		})
		require.Nil(t, err)
		require.Equal(t, models.AssessmentStatusCompleted, boardStore.candidateStatus["assessment_status"])
	})

	t.Run(`кандидат не состоит в комиссии check`, func(t *testing.T) {
		boardStore := &fakeBoardStore{boards: map[string]*dbmodels.Board{
			"board-1": boardWithCandidates("board-1", []int{10}),
		}}
		i := impl{store: boardStore, assessmentStore: &fakeAssessmentStore{}}
		err := i.SaveAssessment("board-1", "cand-ghost", boardapimodels.AssessmentData{EvaluatorID: "eval-1"})
		require.NotNil(t, err)
	})
}

func candidate(id string) dbmodels.Candidate {
	rec := dbmodels.Candidate{
		FirstName: "Иван",
		LastName:  "Иванов",
	}
	rec.ID = id
	return rec
}

func boardWithCandidates(id string, jobIDs []int, candidateIDs ...string) *dbmodels.Board {
	rec := dbmodels.Board{
		BoardName: "Комиссия",
		Status:    models.BoardStatusDraft,
		JobIDs:    pq.Int64Array{},
	}
	rec.ID = id
	for _, jobID := range jobIDs {
		rec.JobIDs = append(rec.JobIDs, int64(jobID))
	}
	rec.Normalize()
	for _, candidateID := range candidateIDs {
		rec.Candidates = append(rec.Candidates, dbmodels.BoardCandidate{
			BoardID:          id,
			CandidateID:      candidateID,
			AssessmentStatus: models.AssessmentStatusNotStarted,
			JobID:            jobIDs[0],
		})
	}
	return &rec
}

func orphanAssignment(id, candidateID string, assignmentID int) dbmodels.TestAssignment {
	rec := dbmodels.TestAssignment{
		AssignmentID:     assignmentID,
		CandidateID:      candidateID,
		JobID:            10,
		CompletionStatus: models.CompletionStatusPending,
	}
	rec.ID = id
	return rec
}

type fakeBoardStore struct {
	boards          map[string]*dbmodels.Board
	added           []dbmodels.BoardCandidate
	jobSet          []int
	candidateStatus map[string]interface{}
}

func (f *fakeBoardStore) Create(rec dbmodels.Board) (string, error) {
	rec.Normalize()
	rec.ID = "board-1"
	f.boards[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeBoardStore) GetByID(id string) (*dbmodels.Board, error) {
	rec, ok := f.boards[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeBoardStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeBoardStore) UpdateJobSet(id string, jobIDs []int) error {
	f.jobSet = jobIDs
	rec := f.boards[id]
	rec.JobIDs = rec.JobIDs[:0]
	for _, jobID := range jobIDs {
		rec.JobIDs = append(rec.JobIDs, int64(jobID))
	}
	rec.Normalize()
	return nil
}

func (f *fakeBoardStore) Delete(id string) error { return nil }

func (f *fakeBoardStore) AddCandidates(recs []dbmodels.BoardCandidate) error {
	f.added = append(f.added, recs...)
	for _, rec := range recs {
		board := f.boards[rec.BoardID]
		board.Candidates = append(board.Candidates, rec)
	}
	return nil
}

func (f *fakeBoardStore) DeleteCandidate(boardID, candidateID string) error { return nil }

func (f *fakeBoardStore) UpdateCandidateStatus(boardID, candidateID string, updMap map[string]interface{}) error {
	f.candidateStatus = updMap
	return nil
}

func (f *fakeBoardStore) ListCount(filter dbmodels.BoardFilter) (int64, error) { return 0, nil }
func (f *fakeBoardStore) List(filter dbmodels.BoardFilter, page, limit int) ([]dbmodels.Board, error) {
	return nil, nil
}

type fakeJobStore struct {
	jobs map[int]dbmodels.Job
}

func (f *fakeJobStore) Create(rec dbmodels.Job) (string, error) { return "", nil }

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
	candidates []dbmodels.Candidate
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error)  { return "", nil }
func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) { return nil, nil }

func (f *fakeCandidateStore) GetByIDs(ids []string) (list []dbmodels.Candidate, err error) {
	for _, rec := range f.candidates {
		for _, id := range ids {
			if rec.ID == id {
				list = append(list, rec)
			}
		}
	}
	return list, nil
}

func (f *fakeCandidateStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeCandidateStore) Delete(id string) error                                { return nil }
func (f *fakeCandidateStore) ListByAppliedJob(jobID int) ([]dbmodels.Candidate, error) {
	return nil, nil
}
func (f *fakeCandidateStore) CountBoundToJob(jobID int, excludeCandidateID string) (int64, error) {
	return 0, nil
}
func (f *fakeCandidateStore) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	return 0, nil
}
func (f *fakeCandidateStore) List(filter dbmodels.CandidateFilter, page, limit int) ([]dbmodels.Candidate, error) {
	return nil, nil
}

type fakeCandidateProvider struct {
	list  []dbmodels.Candidate
	jobOf map[string]int
}

func (f *fakeCandidateProvider) Create(data candidateapimodels.CandidateData) (string, string, error) {
	return "", "", nil
}
func (f *fakeCandidateProvider) Update(id string, data candidateapimodels.CandidateData) (string, error) {
	return "", nil
}
func (f *fakeCandidateProvider) GetByID(id string) (candidateapimodels.CandidateView, error) {
	return candidateapimodels.CandidateView{}, nil
}
func (f *fakeCandidateProvider) Delete(id string) error { return nil }
func (f *fakeCandidateProvider) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	return nil, 0, nil
}

func (f *fakeCandidateProvider) Aggregate(jobIDs []int) ([]dbmodels.Candidate, map[string]int, error) {
	if f.jobOf == nil {
		return []dbmodels.Candidate{}, map[string]int{}, nil
	}
	return f.list, f.jobOf, nil
}

type fakeAssignmentProvider struct {
	boardID string
	refs    []models.CandidateJobRef
	result  []dbmodels.TestAssignment
}

func (f *fakeAssignmentProvider) GenerateForCandidates(boardID string, candidates []models.CandidateJobRef, jobsByID map[int]dbmodels.Job) ([]dbmodels.TestAssignment, error) {
	f.boardID = boardID
	f.refs = candidates
	return f.result, nil
}

func (f *fakeAssignmentProvider) ChangeStatus(assignmentID int, data assignmentapimodels.StatusChangeData) error {
	return nil
}
func (f *fakeAssignmentProvider) List(filter assignmentapimodels.AssignmentFilter) ([]assignmentapimodels.AssignmentView, int64, error) {
	return nil, 0, nil
}

type fakeBoardAssignmentStore struct {
	byBoard    []dbmodels.TestAssignment
	byJob      []dbmodels.TestAssignment
	backfilled []string
}

func (f *fakeBoardAssignmentStore) CreateBatch(recs []dbmodels.TestAssignment) error { return nil }
func (f *fakeBoardAssignmentStore) GetByAssignmentID(assignmentID int) (*dbmodels.TestAssignment, error) {
	return nil, nil
}
func (f *fakeBoardAssignmentStore) Update(assignmentID int, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeBoardAssignmentStore) ListByBoard(boardID string) ([]dbmodels.TestAssignment, error) {
	return f.byBoard, nil
}

func (f *fakeBoardAssignmentStore) ListByJobIDs(jobIDs []int) ([]dbmodels.TestAssignment, error) {
	return f.byJob, nil
}

func (f *fakeBoardAssignmentStore) SetBoardID(ids []string, boardID string) error {
	f.backfilled = ids
	return nil
}

func (f *fakeBoardAssignmentStore) ListCount(filter dbmodels.AssignmentFilter) (int64, error) {
	return 0, nil
}
func (f *fakeBoardAssignmentStore) List(filter dbmodels.AssignmentFilter, page, limit int) ([]dbmodels.TestAssignment, error) {
	return nil, nil
}

type fakeAssessmentStore struct {
	saved []dbmodels.Assessment
}

func (f *fakeAssessmentStore) Upsert(rec dbmodels.Assessment) (string, error) {
	f.saved = append(f.saved, rec)
	return "assessment-1", nil
}

func (f *fakeAssessmentStore) ListByBoardCandidate(boardID, candidateID string) ([]dbmodels.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentStore) DeleteByBoardCandidate(boardID, candidateID string) error { return nil }

type fakeNotifyProvider struct {
	assignments []dbmodels.TestAssignment
	actorID     string
}

func (f *fakeNotifyProvider) Dispatch(assignments []dbmodels.TestAssignment, candidatesByID map[string]dbmodels.Candidate, actorID string) {
	f.assignments = assignments
	f.actorID = actorID
}
