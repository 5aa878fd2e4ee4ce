package model

// Note is the single persisted entity. ID is assigned by the database on
// insert and never changes afterwards.
type Note struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}
