package models

// VideoMetadata is the subset of video information the pipeline reports.
type VideoMetadata struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	ViewCount int64   `json:"view_count"`
}
