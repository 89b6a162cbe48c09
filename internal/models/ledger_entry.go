package models

// LedgerEntry is the row type of the SQLite ledger. The surrogate ID keeps
// insertion order.
type LedgerEntry struct {
	ID           uint `gorm:"primaryKey"`
	Registration `gorm:"embedded"`
}
