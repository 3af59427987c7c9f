package security

import (
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// SessionKeys issues random cookie keys and hashes them with a keyed
// BLAKE2b so the session table never holds a usable cookie value.
type SessionKeys struct {
	secret []byte
}

func NewSessionKeys(secret string) *SessionKeys {
	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	return &SessionKeys{secret: key}
}

func (k *SessionKeys) NewKey() string {
	return uuid.NewString() + uuid.NewString()
}

func (k *SessionKeys) Hash(key string) string {
	h, err := blake2b.New256(k.secret)
	if err != nil {
		// Only reachable with a key longer than 64 bytes, which NewSessionKeys rules out.
		panic(err)
	}
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}
