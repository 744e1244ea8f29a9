package models

import "time"

// Backup is the shadow copy of the catalog written after every successful
// save. Only the most recent one is kept.
type Backup struct {
	Products  []Product `json:"products"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}
