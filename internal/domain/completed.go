package domain

import "time"

// CompletedProblem records that a user finished a problem
type CompletedProblem struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	ProblemID    string    `db:"problem_id" json:"problem_id"`
	CompletedAt  time.Time `db:"completed_at" json:"completed_at"`
	ProblemTitle string    `db:"-" json:"problem_title,omitempty"`
}

type CompletedProblemTable struct {
	ID          string
	UserID      string
	ProblemID   string
	CompletedAt string
}

func GetCompletedProblemTable() CompletedProblemTable {
	return CompletedProblemTable{
		ID:          "id",
		UserID:      "user_id",
		ProblemID:   "problem_id",
		CompletedAt: "completed_at",
	}
}

func (CompletedProblemTable) GetTableName() string {
	return "completed_problems"
}
