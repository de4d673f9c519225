package steg

import "errors"

var (
	// ErrCapacityExceeded is returned when a payload does not fit in the
	// usable slots of a carrier. Callers should check capacity first or
	// branch on this with errors.Is.
	ErrCapacityExceeded = errors.New("payload exceeds carrier capacity")

	// ErrNoPayload is returned when extraction finds no valid length
	// header. A wrong seed, a wrong carrier, and a carrier that never held
	// a payload all produce this same error.
	ErrNoPayload = errors.New("no payload found in carrier")

	// ErrAuthFailed is returned when the authentication tag of an envelope
	// does not verify. It means a wrong passphrase or corrupted data; no
	// plaintext is ever released in that case.
	ErrAuthFailed = errors.New("wrong passphrase or corrupted data")
)
