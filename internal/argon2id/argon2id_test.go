package argon2id

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeHashRoundTrip(t *testing.T) {
	encoded, err := EncodeHash("correct horse battery staple", DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("encoded hash %q lacks argon2id prefix", encoded)
	}

	p, salt, hash, err := DecodeHash(encoded)
	if err != nil {
		t.Fatalf("DecodeHash() error = %v", err)
	}
	if p.Memory != DefaultMemory {
		t.Errorf("Memory = %d, want %d", p.Memory, DefaultMemory)
	}
	if p.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", p.Iterations, DefaultIterations)
	}
	if p.Parallelism != DefaultParallelism {
		t.Errorf("Parallelism = %d, want %d", p.Parallelism, DefaultParallelism)
	}
	if len(salt) != DefaultSaltLength {
		t.Errorf("salt length = %d, want %d", len(salt), DefaultSaltLength)
	}
	if len(hash) != DefaultKeyLength {
		t.Errorf("hash length = %d, want %d", len(hash), DefaultKeyLength)
	}
}

func TestEncodeHashUsesRandomSalt(t *testing.T) {
	first, err := EncodeHash("password123", DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	second, err := EncodeHash("password123", DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	encoded, err := EncodeHash("S3cure-enough", DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "matching password", password: "S3cure-enough", want: true},
		{name: "wrong password", password: "S3cure-enough!", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComparePasswordAndHash(tt.password, encoded)
			if err != nil {
				t.Fatalf("ComparePasswordAndHash() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComparePasswordAndHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeHashRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "empty string", encoded: "", wantErr: ErrInvalidHash},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "too few sections", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA", wantErr: ErrInvalidHash},
		{name: "wrong version", encoded: "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: ErrIncompatibleVersion},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", wantErr: ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeHash(tt.encoded)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeHash() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
