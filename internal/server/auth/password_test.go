package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Luhadia")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Luhadia" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "Luhadia") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestCheckPassword_BadHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}
