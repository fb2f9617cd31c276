package models

import "time"

// OrphanFile is a dead-letter record for uploaded files whose best-effort
// deletion did not complete, so orphan accumulation stays observable instead
// of disappearing into logs.
type OrphanFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Reason    string    `gorm:"size:512" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
