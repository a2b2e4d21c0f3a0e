package interview

// EvaluationTask is one answered slot handed to the scoring service. The
// JSON shape is the scoring service's request body.
type EvaluationTask struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Category    string `json:"category"`
	CandidateId string `json:"candidate_id"`
	JobId       string `json:"job_id"`
	Context     string `json:"context"`

	// GenerationId of the question set the answer belongs to. It stays out
	// of the scoring request.
	GenerationId string `json:"-"`
}

// Dispatcher hands tasks to background evaluation. Dispatch must not block
// on the evaluation itself.
type Dispatcher interface {
	Dispatch(task EvaluationTask) error
}
