package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// NewBatchID returns a 24 character hex id: a 4 byte unix timestamp followed
// by 8 random bytes. All completions of one session share a batch id.
func NewBatchID() string {
	timestamp := time.Now().Unix()
	randomBytes := make([]byte, 8)
	rand.Read(randomBytes)

	id := make([]byte, 12)
	binary.BigEndian.PutUint32(id[:4], uint32(timestamp))
	copy(id[4:], randomBytes)

	return hex.EncodeToString(id)
}

// IsValidBatchID reports whether s has the shape NewBatchID produces, which
// is what a user supplied tellm_batch must look like.
func IsValidBatchID(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil && len(s) == 24
}

// EnsureBatchID returns s when it is already a valid batch id, otherwise a
// fresh one.
func EnsureBatchID(s string) string {
	if !IsValidBatchID(s) {
		return NewBatchID()
	}
	return s
}
