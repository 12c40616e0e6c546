package models

// HistoryEntry is one answered question in a session's transcript.
// Order reflects submission order, starting at zero.
type HistoryEntry struct {
	ID       int64  `db:"id" json:"id"`
	Order    int64  `db:"order" json:"order"`
	Question string `db:"question" json:"question"`
	Summary  string `db:"summary" json:"summary"`
}
