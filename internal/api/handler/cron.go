package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/internal/scheduler"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

// Job types accepted by the manual trigger.
const (
	CronJobTypeExport     = "export"
	CronJobTypeQuotaReset = "quota-reset"
)

// CronJobServices bundles the background jobs exposed for manual runs.
type CronJobServices struct {
	DailyExportService *scheduler.DailyExportService
	QuotaResetService  *scheduler.QuotaResetService
}

// RunCronJob triggers one background job immediately instead of waiting for
// its schedule.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeExport:
			if services.DailyExportService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "export job not available", nil)
				return
			}
			if err := services.DailyExportService.Run(); err != nil {
				logrus.WithError(err).Error("manual export run failed")
				apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "export failed", nil)
				return
			}

		case CronJobTypeQuotaReset:
			if services.QuotaResetService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "quota reset job not available", nil)
				return
			}
			services.QuotaResetService.Run()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown job type, accepted values: export, quota-reset", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "job executed",
			"type":    cronType,
		})
	}
}

// GetCronStatus reports the state of the export job.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"export": services.DailyExportService.Status(),
		})
	}
}
