package deposits

import (
	"net/http"
	"time"

	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseDateParam(value *string) (*time.Time, error) {
	return commonhandler.ParseDateParam(value)
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := commonhandler.FormatDate(*value)
	return &formatted
}
