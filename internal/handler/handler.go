package handler

import (
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
