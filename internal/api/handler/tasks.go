package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

// ListTasks returns today's tasks plus unfinished ones from earlier days.
func ListTasks(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.RelevantTasks(utils.Today()))
	}
}

// CreateTask appends one manually written task, dated today unless the
// request says otherwise.
func CreateTask(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var task domain.DailyTask
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if task.Text == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "text is required", nil)
			return
		}
		if task.Date == "" {
			task.Date = utils.Today()
		}
		if _, err := utils.ParseDate(task.Date); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date must be formatted as YYYY-MM-DD", nil)
			return
		}

		now := time.Now()
		task.ID = storage.NewRecordID()
		task.IsCompleted = false
		task.GeneratedAt = now.UnixMilli()

		store.SaveDailyTasks(append(store.DailyTasks(), task))
		writeJSON(w, http.StatusCreated, task)
	}
}

// ToggleTask flips a task's completion flag. Unknown ids leave the list
// unchanged and still answer 200, matching the store's write semantics.
func ToggleTask(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		writeJSON(w, http.StatusOK, store.ToggleTask(id))
	}
}
