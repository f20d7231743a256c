package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tubescribe/internal/api/response"
	"tubescribe/internal/pipeline"
	"tubescribe/pkg/models"
)

// JobStarter schedules a transcription pipeline for a created job.
type JobStarter interface {
	Start(params pipeline.Params)
}

// JobCreator registers a new job record before the pipeline runs.
type JobCreator interface {
	Create(id string) *models.Job
}

var allowedFormats = map[string]bool{"mp3": true, "wav": true}

var allowedMethods = map[string]bool{
	models.MethodWhisper: true,
	models.MethodGoogle:  true,
	models.MethodBoth:    true,
}

// NewTranscribeHandler returns an http.HandlerFunc for POST /transcribe.
// The job id is returned immediately; the pipeline runs in the background.
func NewTranscribeHandler(jobs JobCreator, starter JobStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid form body", nil)
			return
		}

		url := strings.TrimSpace(r.FormValue("url"))
		if !isYouTubeURL(url) {
			response.Error(w, http.StatusBadRequest, "INVALID_URL",
				"url must be a YouTube link", nil)
			return
		}

		format := r.FormValue("format")
		if format == "" {
			format = "mp3"
		}
		if !allowedFormats[format] {
			response.Error(w, http.StatusBadRequest, "INVALID_FORMAT",
				"format must be mp3 or wav", nil)
			return
		}

		method := r.FormValue("method")
		if method == "" {
			method = models.MethodWhisper
		}
		if !allowedMethods[method] {
			response.Error(w, http.StatusBadRequest, "INVALID_METHOD",
				"method must be whisper, google or both", nil)
			return
		}

		model := r.FormValue("model")
		if model == "" {
			model = "base"
		}

		jobID := uuid.NewString()
		jobs.Create(jobID)
		starter.Start(pipeline.Params{
			JobID:  jobID,
			URL:    url,
			Format: format,
			Method: method,
			Model:  model,
		})

		response.JSON(w, http.StatusOK, map[string]string{"job_id": jobID})
	}
}

func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}
