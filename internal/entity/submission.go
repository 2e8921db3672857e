package entity

// SubmissionRequest is the validated input handed to the request step.
type SubmissionRequest struct {
	URL      string
	Platform Platform
}

// Phase is the position of the controller in one submission cycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseLoading    Phase = "loading"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

// SubmissionState is the visible state of a submission controller.
// Result and Error are never set together; Loading is true only while the
// latest request is in flight.
type SubmissionState struct {
	URL      string       `json:"url"`
	Platform Platform     `json:"platform"`
	Phase    Phase        `json:"phase"`
	Loading  bool         `json:"loading"`
	Result   ScrapeResult `json:"result"`
	Error    string       `json:"error,omitempty"`
	// Outcome classifies the last completed cycle: success, missing_input,
	// platform_mismatch, network_error or service_error.
	Outcome string `json:"outcome,omitempty"`
	Seq     uint64 `json:"seq"`
}

const (
	OutcomeSuccess          = "success"
	OutcomeMissingInput     = "missing_input"
	OutcomePlatformMismatch = "platform_mismatch"
	OutcomeNetworkError     = "network_error"
	OutcomeServiceError     = "service_error"
)

// ValidationFailed reports whether the last cycle stopped before dispatch.
func (s SubmissionState) ValidationFailed() bool {
	return s.Outcome == OutcomeMissingInput || s.Outcome == OutcomePlatformMismatch
}

// Request builds the request for the current input.
func (s SubmissionState) Request() SubmissionRequest {
	return SubmissionRequest{URL: s.URL, Platform: s.Platform}
}

func (s SubmissionState) HasError() bool {
	return s.Error != ""
}

// Clone returns a copy that shares nothing mutable with s.
func (s SubmissionState) Clone() SubmissionState {
	s.Result = s.Result.Clone()
	return s
}
