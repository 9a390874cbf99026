package auth

import "testing"

func TestHashPassword_VerifiesAgainstOriginal(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
}

func TestCheckPassword_RejectsWrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password-one")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CheckPassword("password-two", hash) {
		t.Fatalf("expected verification to fail for a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
	if !CheckPassword("same-input", first) || !CheckPassword("same-input", second) {
		t.Fatalf("both hashes must still verify the original password")
	}
}
