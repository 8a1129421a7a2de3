package assignmenthandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"eval-board-backend/config"
	"eval-board-backend/db"
	sequencestore "eval-board-backend/lib/test-assignment/sequence-store"
	assignmentstore "eval-board-backend/lib/test-assignment/store"
	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	assignmentapimodels "eval-board-backend/models/api/assignment"
	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	// GenerateForCandidates создает и сохраняет назначения тестов для кандидатов,
	// чьи вакансии имеют привязанный тест. Кандидаты без теста пропускаются
	// без ошибки - не по всем вакансиям предусмотрено тестирование.
	GenerateForCandidates(boardID string, candidates []models.CandidateJobRef, jobsByID map[int]dbmodels.Job) (list []dbmodels.TestAssignment, err error)
	ChangeStatus(assignmentID int, data assignmentapimodels.StatusChangeData) error
	List(filter assignmentapimodels.AssignmentFilter) (list []assignmentapimodels.AssignmentView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         assignmentstore.NewInstance(db.DB),
		sequenceStore: sequencestore.NewInstance(db.DB),
		expiryDays:    config.Conf.Assignment.ExpiryDays,
	}
}

type impl struct {
	store         assignmentstore.Provider
	sequenceStore sequencestore.Provider
	expiryDays    int
}

func (i impl) GenerateForCandidates(boardID string, candidates []models.CandidateJobRef, jobsByID map[int]dbmodels.Job) ([]dbmodels.TestAssignment, error) {
	eligible := make([]models.CandidateJobRef, 0, len(candidates))
	for _, ref := range candidates {
		job, ok := jobsByID[ref.JobID]
		if !ok || job.TestID == nil {
			continue
		}
		eligible = append(eligible, ref)
	}
	if len(eligible) == 0 {
		return []dbmodels.TestAssignment{}, nil
	}
	// номер выделяется один раз на пакет и дальше инкрементируется локально
	first, err := i.sequenceStore.NextBatch(dbmodels.SequenceTestAssignment, len(eligible))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	recs := make([]dbmodels.TestAssignment, 0, len(eligible))
	for idx, ref := range eligible {
		job := jobsByID[ref.JobID]
		rec := dbmodels.TestAssignment{
			AssignmentID:     first + idx,
			CandidateID:      ref.CandidateID,
			TestID:           *job.TestID,
			JobID:            ref.JobID,
			AssignmentStatus: models.AssignmentStatusActive,
			ScheduledDate:    now,
			ExpiryDate:       now.AddDate(0, 0, i.expiryDays),
			CompletionStatus: models.CompletionStatusPending,
		}
		if boardID != "" {
			id := boardID
			rec.BoardID = &id
		}
		recs = append(recs, rec)
	}
	err = i.store.CreateBatch(recs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения назначений тестов")
	}
	log.
		WithField("board_id", boardID).
		WithField("count", len(recs)).
		Info("Созданы назначения тестов")
	return recs, nil
}

func (i impl) ChangeStatus(assignmentID int, data assignmentapimodels.StatusChangeData) error {
	rec, err := i.store.GetByAssignmentID(assignmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "назначение не найдено")
	}
	ok, err := rec.AssignmentStatus.IsAllowStatusChange(data.Status)
	if err != nil || !ok {
		return err
	}
	updMap := map[string]interface{}{
		"assignment_status": data.Status,
	}
	if data.Status == models.AssignmentStatusCompleted {
		updMap["completion_status"] = models.CompletionStatusCompleted
		if data.Score != nil {
			updMap["score"] = *data.Score
		}
	}
	return i.store.Update(assignmentID, updMap)
}

func (i impl) List(filter assignmentapimodels.AssignmentFilter) (list []assignmentapimodels.AssignmentView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter.AssignmentFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	recs, err := i.store.List(filter.AssignmentFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]assignmentapimodels.AssignmentView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, assignmentapimodels.AssignmentConvert(rec))
	}
	return list, rowCount, nil
}
