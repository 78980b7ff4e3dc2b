package models

import (
	"prediction-maker-go/internal/engine"
	"prediction-maker-go/report"
)

// SimulateResponse carries the run outcome.
type SimulateResponse struct {
	Steps   int                            `json:"steps"`
	Seed    int64                          `json:"seed"`
	Report  []report.Row                   `json:"report"`
	Summary report.Summary                 `json:"summary"`
	Trace   []map[string]engine.StepResult `json:"trace,omitempty"`
}

// StreamFrame is one websocket frame of a streamed run.
type StreamFrame struct {
	Step    int                          `json:"step"`
	Results map[string]engine.StepResult `json:"results,omitempty"`
	Summary *report.Summary              `json:"summary,omitempty"`
}

// ErrorResponse is the envelope for all error payloads.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
