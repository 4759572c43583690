package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func sendError(w http.ResponseWriter, logger logrus.FieldLogger, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sendJSONOrLog(w, logger, wrapError(err))
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
