package utils

import "testing"

func TestComparePasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("ips123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(string(hashed), "ips123"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Fatal("expected wrong password to fail verification")
	}
}

// Corrupted or truncated stored hashes must fail verification too, not
// just a clean mismatch. Login treats any comparison error as a reject.
func TestComparePasswordCorruptedHash(t *testing.T) {
	cases := []struct {
		name   string
		hashed string
	}{
		{"empty hash", ""},
		{"truncated hash", "$2a$10$too-short"},
		{"plaintext stored", "ips123"},
	}
	for _, tc := range cases {
		if err := ComparePassword(tc.hashed, "ips123"); err == nil {
			t.Fatalf("%s: expected verification to fail", tc.name)
		}
	}
}
