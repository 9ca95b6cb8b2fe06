package core

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	m "garchvar/models"
)

const (
	DefaultAddr = ":8080"

	// fitting a large batch dominates request time, keep the write window wide
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Minute

	maxUploadBytes = 64 << 20
)

func GetHttpServer(sc *ServiceContext, addr string) *http.Server {
	router := chi.NewRouter()

	router.Get("/api/ping", sc.ping)
	router.Post("/api/analyze", sc.analyze)
	router.Get("/api/runs", sc.listRuns)

	return &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func (sc *ServiceContext) ping(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	respondJson(w, http.StatusOK, m.GetServiceResponseOk(&message))
}

// analyze takes the uploaded price workbook and responds with the rendered
// report as an attachment. Errors here are whole-batch failures, there is no
// partial report.
func (sc *ServiceContext) analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJson(w, http.StatusBadRequest, m.GetServiceResponseError("missing file upload: "+err.Error()))
		return
	}
	defer file.Close()

	report, err := sc.RunAnalysis(file, header.Filename)
	if err != nil {
		sc.Log.Error().Err(err).Str("filename", header.Filename).Msg("analysis failed")
		respondJson(w, http.StatusInternalServerError, m.GetServiceResponseError(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="GARCH_Risk_Report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(report)
}

func (sc *ServiceContext) listRuns(w http.ResponseWriter, r *http.Request) {
	if sc.Postgres == nil {
		respondJson(w, http.StatusServiceUnavailable, m.GetServiceResponseError("run history persistence is not configured"))
		return
	}

	runs, err := sc.Postgres.GetAnalysisRuns(sc.Context)
	if err != nil {
		sc.Log.Error().Err(err).Msg("error listing analysis runs")
		respondJson(w, http.StatusInternalServerError, m.GetServiceResponseError(err.Error()))
		return
	}

	respondJson(w, http.StatusOK, m.GetServiceResponseOk(&runs))
}

func respondJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
