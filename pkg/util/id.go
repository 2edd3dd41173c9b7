package util

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a collection object ID: the current epoch milliseconds,
// bumped past the previously issued ID so IDs stay unique and increasing
// even when several objects are created within the same millisecond.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
