package request

// SubmissionRequest is the JSON body of POST /api/submissions.
type SubmissionRequest struct {
	URL string `json:"url"`
	// Platform is "youtube" or "tiktok". When set the request behaves like
	// selecting that platform; when empty it behaves like pressing Submit.
	Platform string `json:"platform"`
}
