package contract

type PlanErrorCode string

const (
	PlanErrExamDatePast PlanErrorCode = "EXAM_DATE_PAST"
	PlanErrNoModules    PlanErrorCode = "NO_MODULES"
	PlanErrValidation   PlanErrorCode = "VALIDATION"
	PlanErrNotFound     PlanErrorCode = "NOT_FOUND"
	PlanErrInternal     PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is the typed error surfaced by plan use cases. Only hard
// configuration failures become PlanErrors; feasibility shortfalls travel
// as warnings on the result instead.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
