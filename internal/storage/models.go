package storage

import "time"

// Run kinds.
const (
	KindAsk     = "ask"
	KindCouncil = "council"
)

// RunRecord is one execution of a driver: a single query or a convened council.
type RunRecord struct {
	ID        string // UUID
	Kind      string // KindAsk or KindCouncil
	Prompt    string
	CreatedAt time.Time
}

// AnswerRecord is one model's outcome within a run.
// Exactly one of Content and Error is set.
type AnswerRecord struct {
	ID       string // UUID
	RunID    string // Foreign key to runs.id
	Position int    // Order in which the model was asked (starts at 0)
	Model    string
	Role     string
	Content  string
	Error    string
}
