package service

import (
	"fmt"
	"time"

	"odbcprobe/internal/core"
)

const (
	RunKindQuery = "query"
	RunKindProbe = "probe"

	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// History records query runs and probes to a RunRepository
type History struct {
	repo core.RunRepository
}

func NewHistory(repo core.RunRepository) *History {
	return &History{repo: repo}
}

func (h *History) RecordQuery(target string, s core.Summary) error {
	run := &core.Run{
		Timestamp:  time.Now().Add(-s.Duration),
		Kind:       RunKindQuery,
		Target:     target,
		Query:      s.Query,
		Status:     StatusSuccess,
		Rows:       s.Rows,
		DurationMs: s.Duration.Milliseconds(),
	}
	if s.Err != nil {
		run.Status = StatusError
		run.ErrorMsg = s.Err.Error()
	}
	return h.repo.Create(run)
}

// RecordFailedConnect stores a connect attempt that never reached the query stage.
func (h *History) RecordFailedConnect(target, query string, err error) error {
	return h.repo.Create(&core.Run{
		Timestamp: time.Now(),
		Kind:      RunKindQuery,
		Target:    target,
		Query:     query,
		Status:    StatusError,
		ErrorMsg:  err.Error(),
	})
}

func (h *History) RecordProbe(r core.ProbeResult) error {
	run := &core.Run{
		Timestamp:  time.Now().Add(-r.Latency),
		Kind:       RunKindProbe,
		Target:     fmt.Sprintf("%s:%d", r.Host, r.Port),
		Status:     r.Status.String(),
		DurationMs: r.Latency.Milliseconds(),
	}
	if r.Err != nil {
		run.ErrorMsg = r.Err.Error()
	}
	return h.repo.Create(run)
}

func (h *History) Recent(limit int) ([]core.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return h.repo.GetRecent(limit)
}
