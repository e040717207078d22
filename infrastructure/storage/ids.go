package storage

import (
	"strconv"
	"time"
)

// NewRecordID returns a coarse timestamp-derived record id. Two calls within
// the same millisecond collide; callers generating several ids in one batch
// must use NewBatchID instead.
func NewRecordID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewBatchID returns a record id that is unique within a batch generated in
// a tight loop, by suffixing the item index.
func NewBatchID(base int64, index int) string {
	return strconv.FormatInt(base, 10) + strconv.Itoa(index)
}
