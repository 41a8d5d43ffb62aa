package models

import (
	"fmt"
	"strings"
	"time"
)

type Level string

const (
	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"
	LevelD Level = "D"
	LevelE Level = "E"
)

// AllLevels lists the competition brackets in display order.
var AllLevels = []Level{LevelA, LevelB, LevelC, LevelD, LevelE}

// ParseLevel upper-cases s and checks it names one of the A–E brackets.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

type TeamStatus string

const (
	StatusPendingEvaluation           TeamStatus = "pending_evaluation"
	StatusPassedEvaluation            TeamStatus = "passed_evaluation"
	StatusRejected                    TeamStatus = "rejected"
	StatusAwaitingPaymentVerification TeamStatus = "awaiting_payment_verification"
	StatusPaymentVerified             TeamStatus = "payment_verified"
)

var AllStatuses = []TeamStatus{
	StatusPendingEvaluation,
	StatusPassedEvaluation,
	StatusRejected,
	StatusAwaitingPaymentVerification,
	StatusPaymentVerified,
}

func ParseTeamStatus(s string) (TeamStatus, error) {
	st := TeamStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown team status %q", s)
}

// CountsAsPassed reports whether a team in this status has cleared the skill evaluation.
func (s TeamStatus) CountsAsPassed() bool {
	switch s {
	case StatusPassedEvaluation, StatusAwaitingPaymentVerification, StatusPaymentVerified:
		return true
	}
	return false
}

type Team struct {
	ID         int        `json:"id" db:"id"`
	TeamCode   string     `json:"team_code" db:"team_code"`
	TeamName   string     `json:"team_name" db:"team_name"`
	Level      Level      `json:"level" db:"level"`
	TotalFee   int        `json:"total_fee" db:"total_fee"`
	EvalMethod string     `json:"eval_method" db:"eval_method"`
	EvalLink   string     `json:"eval_link" db:"eval_link"`
	Status     TeamStatus `json:"status" db:"status"`
	SlipPath   *string    `json:"slip_path" db:"slip_path"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}

// LevelCount is the per-bracket registration summary shown on the landing page.
type LevelCount struct {
	Level  Level `json:"level"`
	Total  int   `json:"total"`
	Passed int   `json:"passed"`
}
