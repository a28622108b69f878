package domain

import "time"

// EntityStats records how one entity fared during a cleaning run.
type EntityStats struct {
	Original int `json:"original"`
	Cleaned  int `json:"cleaned"`
	Removed  int `json:"removed"`
}

// CleaningStats is the durable record of a single cleaning-pipeline run.
type CleaningStats struct {
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Contacts  EntityStats `json:"contacts"`
	Programs  EntityStats `json:"programs"`
}
