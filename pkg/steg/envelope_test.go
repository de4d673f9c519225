package steg

import (
	"bytes"
	"errors"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox")

	for _, compress := range []bool{false, true} {
		envelope, err := Seal(payload, "hunter2", compress)
		if err != nil {
			t.Fatalf("compress=%t: seal failed: %v", compress, err)
		}

		got, isText, err := Open(envelope, "hunter2")
		if err != nil {
			t.Fatalf("compress=%t: open failed: %v", compress, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("compress=%t: got %q, want %q", compress, got, payload)
		}
		if !isText {
			t.Errorf("compress=%t: ASCII payload classified as binary", compress)
		}
	}
}

func TestEnvelopeLayout(t *testing.T) {
	envelope, err := Seal([]byte("x"), "pw", true)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	if len(envelope) < envHeaderSize {
		t.Fatalf("envelope is %d bytes, want at least %d", len(envelope), envHeaderSize)
	}
	if envelope[0] != 1 {
		t.Errorf("compression flag = %d, want 1", envelope[0])
	}

	plain, err := Seal([]byte("x"), "pw", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if plain[0] != 0 {
		t.Errorf("compression flag = %d, want 0", plain[0])
	}
}

func TestEnvelopeFreshSaltAndNonce(t *testing.T) {
	a, err := Seal([]byte("same payload"), "pw", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	b, err := Seal([]byte("same payload"), "pw", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if bytes.Equal(a[1:envHeaderSize], b[1:envHeaderSize]) {
		t.Error("two seals drew identical salt and nonce")
	}
}

func TestEnvelopeWrongPassphrase(t *testing.T) {
	envelope, err := Seal([]byte("secret"), "right", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	if _, _, err := Open(envelope, "wrong"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestEnvelopeTamperedCiphertext(t *testing.T) {
	envelope, err := Seal([]byte("secret"), "pw", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	envelope[len(envelope)-1] ^= 0x01

	if _, _, err := Open(envelope, "pw"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestEnvelopeTooShort(t *testing.T) {
	if _, _, err := Open([]byte{0, 1, 2}, "pw"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestEnvelopeBinaryClassification(t *testing.T) {
	payload := []byte{0xFF, 0xFE, 0x00, 0x80}
	envelope, err := Seal(payload, "pw", false)
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	got, isText, err := Open(envelope, "pw")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %x, want %x", got, payload)
	}
	if isText {
		t.Error("invalid UTF-8 classified as text")
	}
}
