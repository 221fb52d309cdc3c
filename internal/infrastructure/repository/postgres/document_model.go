package postgres

import "time"

const documentTable = "cache_documents"

var documentColumns = []string{"collection", "doc_key", "data", "updated_at", "event_at"}

type documentTableModel struct {
	Collection string     `db:"collection"`
	DocKey     string     `db:"doc_key"`
	Data       []byte     `db:"data"`
	UpdatedAt  time.Time  `db:"updated_at"`
	EventAt    *time.Time `db:"event_at"`
}

type documentInsertModel struct {
	Collection string     `db:"collection"`
	DocKey     string     `db:"doc_key"`
	Data       string     `db:"data"`
	UpdatedAt  time.Time  `db:"updated_at"`
	EventAt    *time.Time `db:"event_at"`
}
