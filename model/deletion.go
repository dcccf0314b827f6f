// Package model contains the records produced by an ONT cleaning run.
package model

import "time"

// StatusSuccess is the only status written today: a failed port aborts the
// run before anything is recorded for it.
const StatusSuccess = "success"

// DeletionRecord is one processed GPON port. Records are append-only.
type DeletionRecord struct {
	// Timestamp is when the deletion was recorded, always UTC
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`

	// Port is the GPON port number on interface gpon 0/0
	Port int `bson:"port" json:"port"`

	// ONTsDeleted is the count the OLT reported after "success:"
	ONTsDeleted int `bson:"onts_deleted" json:"onts_deleted"`

	// Status is StatusSuccess
	Status string `bson:"status" json:"status"`
}

// NewDeletionRecord builds a success record stamped with at converted to UTC
func NewDeletionRecord(at time.Time, port, ontsDeleted int) DeletionRecord {
	return DeletionRecord{
		Timestamp:   at.UTC(),
		Port:        port,
		ONTsDeleted: ontsDeleted,
		Status:      StatusSuccess,
	}
}
