package boardhandler

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eval-board-backend/db"
	assessmentstore "eval-board-backend/lib/assessment/store"
	boardstore "eval-board-backend/lib/board/store"
	candidatehandler "eval-board-backend/lib/candidate"
	candidatestore "eval-board-backend/lib/candidate/store"
	jobstore "eval-board-backend/lib/job/store"
	notificationhandler "eval-board-backend/lib/notification"
	assignmenthandler "eval-board-backend/lib/test-assignment"
	assignmentstore "eval-board-backend/lib/test-assignment/store"
	"eval-board-backend/lib/utils/helpers"
	"eval-board-backend/models"
	apimodels "eval-board-backend/models/api"
	boardapimodels "eval-board-backend/models/api/board"
	dbmodels "eval-board-backend/models/db"
)

type Provider interface {
	Create(data boardapimodels.BoardData, actorID string) (view boardapimodels.BoardView, hMsg string, err error)
	Update(id string, data boardapimodels.BoardUpdateData) error
	GetByID(id string) (view boardapimodels.BoardView, err error)
	List(filter boardapimodels.BoardFilter) (list []boardapimodels.BoardView, rowCount int64, err error)
	Delete(id string) error
	// AssignCandidates дополняет существующую комиссию кандидатами.
	// Вакансии новых кандидатов, отсутствующие в наборе комиссии,
	// добавляются в него; набор вакансий только растет.
	AssignCandidates(boardID string, data boardapimodels.AssignCandidatesData, actorID string) (result boardapimodels.AssignResult, hMsg string, err error)
	GetBoardCandidates(boardID string) (list []boardapimodels.BoardCandidateView, err error)
	RemoveCandidate(boardID, candidateID string) error
	SaveAssessment(boardID, candidateID string, data boardapimodels.AssessmentData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:              boardstore.NewInstance(db.DB),
		jobStore:           jobstore.NewInstance(db.DB),
		candidateStore:     candidatestore.NewInstance(db.DB),
		candidateProvider:  candidatehandler.Instance,
		assignmentProvider: assignmenthandler.Instance,
		assignmentStore:    assignmentstore.NewInstance(db.DB),
		assessmentStore:    assessmentstore.NewInstance(db.DB),
		notifyProvider:     notificationhandler.Instance,
	}
}

type impl struct {
	store              boardstore.Provider
	jobStore           jobstore.Provider
	candidateStore     candidatestore.Provider
	candidateProvider  candidatehandler.Provider
	assignmentProvider assignmenthandler.Provider
	assignmentStore    assignmentstore.Provider
	assessmentStore    assessmentstore.Provider
	notifyProvider     notificationhandler.Provider
}

func (i impl) getLogger(boardID, actorID string) *log.Entry {
	return log.
		WithField("board_id", boardID).
		WithField("actor_id", actorID)
}

// resolveJobs возвращает найденные вакансии в порядке входного набора,
// не найденные логируются и пропускаются
func (i impl) resolveJobs(jobIDs []int) (resolved []int, jobsByID map[int]dbmodels.Job, err error) {
	jobs, err := i.jobStore.ListByJobIDs(jobIDs)
	if err != nil {
		return nil, nil, err
	}
	jobsByID = make(map[int]dbmodels.Job, len(jobs))
	for _, rec := range jobs {
		jobsByID[rec.JobID] = rec
	}
	resolved = make([]int, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		if _, ok := jobsByID[jobID]; !ok {
			log.WithField("job_id", jobID).Warn("вакансия не найдена, пропущена при формировании комиссии")
			continue
		}
		resolved = append(resolved, jobID)
	}
	return resolved, jobsByID, nil
}

func (i impl) Create(data boardapimodels.BoardData, actorID string) (view boardapimodels.BoardView, hMsg string, err error) {
	jobIDs := helpers.UniqueInts(data.EffectiveJobIDs())
	if len(jobIDs) == 0 {
		return boardapimodels.BoardView{}, "должна быть выбрана хотя бы одна вакансия", nil
	}
	resolved, jobsByID, err := i.resolveJobs(jobIDs)
	if err != nil {
		return boardapimodels.BoardView{}, "", err
	}
	if len(resolved) == 0 {
		return boardapimodels.BoardView{}, "ни одна из выбранных вакансий не найдена", nil
	}
	candidates, jobOf, err := i.candidateProvider.Aggregate(resolved)
	if err != nil {
		return boardapimodels.BoardView{}, "", err
	}

	now := time.Now()
	rec := dbmodels.Board{
		BoardName:        data.BoardName,
		BoardDescription: data.BoardDescription,
		BoardDate:        data.BoardDate,
		Status:           models.BoardStatusDraft,
		JobIDs:           toInt64Array(resolved),
	}
	refs := make([]models.CandidateJobRef, 0, len(candidates))
	candidatesByID := make(map[string]dbmodels.Candidate, len(candidates))
	for _, candidate := range candidates {
		rec.Candidates = append(rec.Candidates, dbmodels.BoardCandidate{
			CandidateID:      candidate.ID,
			AssessmentStatus: models.AssessmentStatusNotStarted,
			AssignedDate:     now,
			JobID:            jobOf[candidate.ID],
		})
		refs = append(refs, models.CandidateJobRef{CandidateID: candidate.ID, JobID: jobOf[candidate.ID]})
		candidatesByID[candidate.ID] = candidate
	}
	boardID, err := i.store.Create(rec)
	if err != nil {
		return boardapimodels.BoardView{}, "", errors.Wrap(err, "ошибка сохранения комиссии")
	}
	logger := i.getLogger(boardID, actorID)
	logger.
		WithField("candidates", len(refs)).
		Info("Создана оценочная комиссия")

	assignments, err := i.assignmentProvider.GenerateForCandidates(boardID, refs, jobsByID)
	if err != nil {
		// комиссия уже сохранена, записи о назначениях потеряны не будут
		// при повторной выдаче тестов
		return boardapimodels.BoardView{}, "", err
	}
	// уведомления не влияют на результат операции
	i.notifyProvider.Dispatch(assignments, candidatesByID, actorID)

	view, err = i.GetByID(boardID)
	if err != nil {
		return boardapimodels.BoardView{}, "", err
	}
	return view, "", nil
}

func (i impl) Update(id string, data boardapimodels.BoardUpdateData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	updMap := map[string]interface{}{}
	if data.BoardName != "" {
		updMap["board_name"] = data.BoardName
	}
	if data.BoardDescription != "" {
		updMap["board_description"] = data.BoardDescription
	}
	if data.BoardDate != nil {
		updMap["board_date"] = *data.BoardDate
	}
	if data.Status != "" && data.Status != rec.Status {
		ok, err := rec.Status.IsAllowStatusChange(data.Status)
		if err != nil || !ok {
			return err
		}
		updMap["status"] = data.Status
	}
	return i.store.Update(id, updMap)
}

func (i impl) GetByID(id string) (boardapimodels.BoardView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return boardapimodels.BoardView{}, err
	}
	if rec == nil {
		return boardapimodels.BoardView{}, errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	rec.Normalize()
	return boardapimodels.BoardConvert(*rec), nil
}

func (i impl) List(filter boardapimodels.BoardFilter) (list []boardapimodels.BoardView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter.BoardFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	recs, err := i.store.List(filter.BoardFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]boardapimodels.BoardView, 0, len(recs))
	for _, rec := range recs {
		rec.Normalize()
		list = append(list, boardapimodels.BoardConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	return i.store.Delete(id)
}

func (i impl) AssignCandidates(boardID string, data boardapimodels.AssignCandidatesData, actorID string) (result boardapimodels.AssignResult, hMsg string, err error) {
	board, err := i.store.GetByID(boardID)
	if err != nil {
		return result, "", err
	}
	if board == nil {
		return result, "", errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	board.Normalize()
	logger := i.getLogger(boardID, actorID)

	newIDs := make([]string, 0, len(data.CandidateIDs))
	for _, candidateID := range data.CandidateIDs {
		if board.HasCandidate(candidateID) {
			result.AlreadyPresent++
			continue
		}
		newIDs = append(newIDs, candidateID)
	}
	if len(newIDs) == 0 {
		// весь запрошенный набор уже в комиссии - не ошибка
		view := boardapimodels.BoardConvert(*board)
		result.Board = &view
		return result, "все кандидаты уже состоят в комиссии", nil
	}

	candidates, err := i.candidateStore.GetByIDs(newIDs)
	if err != nil {
		return result, "", err
	}
	candidatesByID := make(map[string]dbmodels.Candidate, len(candidates))
	for _, rec := range candidates {
		candidatesByID[rec.ID] = rec
	}

	// вакансии новых кандидатов: текущая вакансия в приоритете над вакансией отклика
	type pending struct {
		candidate dbmodels.Candidate
		jobID     int
	}
	pendings := make([]pending, 0, len(newIDs))
	candidateJobIDs := make([]int, 0, len(newIDs))
	for _, candidateID := range newIDs {
		candidate, ok := candidatesByID[candidateID]
		if !ok {
			logger.WithField("candidate_id", candidateID).Warn("кандидат не найден, пропущен")
			result.Skipped++
			continue
		}
		jobID, ok := candidate.BoardJobID()
		if !ok {
			logger.WithField("candidate_id", candidateID).Warn("кандидат без привязки к вакансии, пропущен")
			result.Skipped++
			continue
		}
		pendings = append(pendings, pending{candidate: candidate, jobID: jobID})
		candidateJobIDs = append(candidateJobIDs, jobID)
	}
	if len(pendings) == 0 {
		view := boardapimodels.BoardConvert(*board)
		result.Board = &view
		return result, "", nil
	}

	_, jobsByID, err := i.resolveJobs(helpers.UniqueInts(candidateJobIDs))
	if err != nil {
		return result, "", err
	}

	workingSet := board.EffectiveJobIDs()
	newJobs := []int{}
	accepted := make([]pending, 0, len(pendings))
	for _, p := range pendings {
		if _, ok := jobsByID[p.jobID]; !ok {
			logger.WithField("candidate_id", p.candidate.ID).Warn("вакансия кандидата не найдена, кандидат пропущен")
			result.Skipped++
			continue
		}
		if !board.HasJob(p.jobID) && !containsInt(newJobs, p.jobID) {
			newJobs = append(newJobs, p.jobID)
		}
		accepted = append(accepted, p)
	}
	if len(accepted) == 0 {
		view := boardapimodels.BoardConvert(*board)
		result.Board = &view
		return result, "", nil
	}

	if len(newJobs) > 0 {
		// расширяем набор вакансий комиссии, устаревший скаляр
		// при этом мигрирует в списочное представление
		workingSet = append(workingSet, newJobs...)
		err = i.store.UpdateJobSet(boardID, workingSet)
		if err != nil {
			return result, "", errors.Wrap(err, "ошибка расширения набора вакансий комиссии")
		}
		result.NewJobs = newJobs
		logger.
			WithField("new_jobs", newJobs).
			Info("Набор вакансий комиссии расширен")
	}

	now := time.Now()
	newRecs := make([]dbmodels.BoardCandidate, 0, len(accepted))
	refs := make([]models.CandidateJobRef, 0, len(accepted))
	for _, p := range accepted {
		newRecs = append(newRecs, dbmodels.BoardCandidate{
			BoardID:          boardID,
			CandidateID:      p.candidate.ID,
			AssessmentStatus: models.AssessmentStatusNotStarted,
			AssignedDate:     now,
			JobID:            p.jobID,
		})
		refs = append(refs, models.CandidateJobRef{CandidateID: p.candidate.ID, JobID: p.jobID})
	}
	err = i.store.AddCandidates(newRecs)
	if err != nil {
		return result, "", errors.Wrap(err, "ошибка добавления кандидатов в комиссию")
	}
	result.Assigned = len(newRecs)
	logger.
		WithField("assigned", result.Assigned).
		WithField("already_present", result.AlreadyPresent).
		WithField("skipped", result.Skipped).
		Info("Кандидаты добавлены в комиссию")

	assignments, err := i.assignmentProvider.GenerateForCandidates(boardID, refs, jobsByID)
	if err != nil {
		return result, "", err
	}
	i.notifyProvider.Dispatch(assignments, candidatesByID, actorID)

	view, err := i.GetByID(boardID)
	if err != nil {
		return result, "", err
	}
	result.Board = &view
	return result, "", nil
}

func (i impl) GetBoardCandidates(boardID string) (list []boardapimodels.BoardCandidateView, err error) {
	board, err := i.store.GetByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	board.Normalize()

	assignments, err := i.assignmentStore.ListByBoard(boardID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		// записи, созданные до привязки к комиссии, находим по набору
		// вакансий и дозаполняем board_id для последующих чтений
		assignments, err = i.reconcileAssignments(*board)
		if err != nil {
			return nil, err
		}
	}
	byCandidate := make(map[string]dbmodels.TestAssignment, len(assignments))
	for _, rec := range assignments {
		if _, ok := byCandidate[rec.CandidateID]; !ok {
			byCandidate[rec.CandidateID] = rec
		}
	}

	list = make([]boardapimodels.BoardCandidateView, 0, len(board.Candidates))
	for _, bc := range board.Candidates {
		var assignment *dbmodels.TestAssignment
		if rec, ok := byCandidate[bc.CandidateID]; ok {
			assignment = &rec
		}
		list = append(list, boardapimodels.BoardCandidateConvert(bc, assignment))
	}
	return list, nil
}

func (i impl) reconcileAssignments(board dbmodels.Board) ([]dbmodels.TestAssignment, error) {
	byJob, err := i.assignmentStore.ListByJobIDs(board.EffectiveJobIDs())
	if err != nil {
		return nil, err
	}
	matched := make([]dbmodels.TestAssignment, 0, len(byJob))
	backfillIDs := make([]string, 0, len(byJob))
	for _, rec := range byJob {
		if !board.HasCandidate(rec.CandidateID) {
			continue
		}
		matched = append(matched, rec)
		if rec.BoardID == nil {
			backfillIDs = append(backfillIDs, rec.ID)
		}
	}
	if len(backfillIDs) > 0 {
		// ленивая миграция, сбой не мешает отдать данные
		if err = i.assignmentStore.SetBoardID(backfillIDs, board.ID); err != nil {
			log.WithError(err).
				WithField("board_id", board.ID).
				Error("ошибка дозаполнения board_id на назначениях")
		}
	}
	return matched, nil
}

func (i impl) RemoveCandidate(boardID, candidateID string) error {
	board, err := i.store.GetByID(boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	if !board.HasCandidate(candidateID) {
		return errors.Wrap(apimodels.ErrNotFound, "кандидат не состоит в комиссии")
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		// оценки кандидата удаляются вместе с ним
		err := assessmentstore.NewInstance(tx).DeleteByBoardCandidate(boardID, candidateID)
		if err != nil {
			return err
		}
		return boardstore.NewInstance(tx).DeleteCandidate(boardID, candidateID)
	})
}

func (i impl) SaveAssessment(boardID, candidateID string, data boardapimodels.AssessmentData) error {
	board, err := i.store.GetByID(boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return errors.Wrap(apimodels.ErrNotFound, "комиссия не найдена")
	}
	if !board.HasCandidate(candidateID) {
		return errors.Wrap(apimodels.ErrNotFound, "кандидат не состоит в комиссии")
	}
	rec := dbmodels.Assessment{
		BoardID:     boardID,
		CandidateID: candidateID,
		EvaluatorID: data.EvaluatorID,
		Score:       data.Score,
		Notes:       data.Notes,
		Decision:    data.Decision,
	}
	_, err = i.assessmentStore.Upsert(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения оценки")
	}
	status := models.AssessmentStatusInProgress
	if data.Decision != "" {
		status = models.AssessmentStatusCompleted
	}
	return i.store.UpdateCandidateStatus(boardID, candidateID, map[string]interface{}{
		"assessment_status": status,
	})
}

func toInt64Array(values []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		arr = append(arr, int64(v))
	}
	return arr
}

func containsInt(values []int, v int) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
