package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tubescribe/internal/api/response"
	"tubescribe/internal/store"
	"tubescribe/pkg/models"
)

// JobGetter looks up a job by id.
type JobGetter interface {
	Get(id string) (*models.Job, error)
}

// NewStatusHandler returns an http.HandlerFunc for GET /status/{jobID}.
func NewStatusHandler(jobs JobGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobID")

		job, err := jobs.Get(jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND",
					"No job with the given id", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, http.StatusOK, job)
	}
}
