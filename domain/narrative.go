package domain

// NarrativeResponse wraps the advisor commentary together with the metrics it
// was generated from.
type NarrativeResponse struct {
	Analysis AnalysisResult `json:"analysis"`
	Markdown string         `json:"markdown"`
	HTML     string         `json:"html,omitempty"`
	Model    string         `json:"model"`
	Cached   bool           `json:"cached"`
}
