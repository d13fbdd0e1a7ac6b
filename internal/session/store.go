package session

// Store persists and retrieves the authenticated session. Implementations
// confine their side effects to the durable store: no network, no UI.
//
// All implementations share the same contract:
//
//   - Save atomically replaces the whole persisted record; a concurrent
//     reader sees either the previous record or the new one, never a torn
//     write.
//   - Load returns (nil, nil) when no session is present. Records that fail
//     to decrypt, fail to parse, are missing required fields, or carry the
//     wrong API fingerprint are treated as absent, not as errors.
//   - Clear removes the session unconditionally and is idempotent.
//
// The pending-signup email is auxiliary transient state for the
// signup -> verify flow. It is not part of the Session.
type Store interface {
	Save(s Session) error
	Load() (*Session, error)
	Clear() error

	SavePendingSignup(email string) error
	LoadPendingSignup() (string, error)
	ClearPendingSignup() error
}
