package models

type CandidateType string

const (
	CandidateTypeInitial   CandidateType = "initial"
	CandidateTypeProbation CandidateType = "probation"
	CandidateTypeHired     CandidateType = "hired"
	CandidateTypeRejected  CandidateType = "rejected"
)

type HiringStatus string

const (
	HiringStatusApplied     HiringStatus = "applied"
	HiringStatusInReview    HiringStatus = "in_review"
	HiringStatusShortlisted HiringStatus = "shortlisted"
	HiringStatusHired       HiringStatus = "hired"
	HiringStatusRejected    HiringStatus = "rejected"
)

type JobStatus string

const (
	JobStatusOpened JobStatus = "opened"
	JobStatusClosed JobStatus = "closed"
)

// CandidateJobRef - связка кандидата с вакансией, по которой он проходит комиссию
type CandidateJobRef struct {
	CandidateID string
	JobID       int
}
