package response

import "github.com/user/vidmeta/internal/entity"

// SubmissionStateResponse is a DTO for entity.SubmissionState.
type SubmissionStateResponse struct {
	URL       string              `json:"url"`
	Platform  string              `json:"platform"`
	Phase     string              `json:"phase"`
	Loading   bool                `json:"loading"`
	VideoData entity.ScrapeResult `json:"videoData"`
	Error     *string             `json:"error"`
	Outcome   string              `json:"outcome,omitempty"`
}

// FromState converts controller state; absent result and error encode as null.
func FromState(s entity.SubmissionState) SubmissionStateResponse {
	resp := SubmissionStateResponse{
		URL:       s.URL,
		Platform:  s.Platform.String(),
		Phase:     string(s.Phase),
		Loading:   s.Loading,
		VideoData: s.Result,
		Outcome:   s.Outcome,
	}
	if s.Error != "" {
		msg := s.Error
		resp.Error = &msg
	}
	return resp
}
