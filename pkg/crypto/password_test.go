package crypto

import (
	"strings"
	"testing"
)

// fastBcrypt keeps the suite quick; cost does not change the invariants.
func fastBcrypt() *Bcrypt {
	return &Bcrypt{Cost: 4}
}

func fastArgon2() *Argon2 {
	return &Argon2{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

const testSalt = "abcdefghijABCDEFGHIJ0123456789"

func TestBcrypt_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "success", password: "testPassword123"},
		{name: "empty password", password: ""},
		{name: "long password", password: strings.Repeat("a", 128)},
		{name: "unicode", password: "パスワード🔐"},
		{name: "special chars", password: "p@ssw0rd!#$%"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := fastBcrypt()

			// Act
			hash, err := b.Hash(test.password, testSalt)

			// Assert
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("Hash() should be a bcrypt hash, got %q", hash)
			}
			if strings.Contains(hash, test.password+testSalt) {
				t.Error("Hash() leaked the plaintext")
			}
		})
	}
}

func TestBcrypt_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		salt     string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", salt: testSalt, wantOk: true},
		{name: "wrong password same length", password: "correctPassword", attempt: "correctPasswore", salt: testSalt, wantOk: false},
		{name: "case sensitive", password: "correctPassword", attempt: "correctpassword", salt: testSalt, wantOk: false},
		{name: "extra character", password: "correctPassword", attempt: "correctPassword1", salt: testSalt, wantOk: false},
		{name: "long password correct", password: strings.Repeat("x", 100), attempt: strings.Repeat("x", 100), salt: testSalt, wantOk: true},
		{name: "long password differs at the end", password: strings.Repeat("x", 100), attempt: strings.Repeat("x", 99) + "y", salt: testSalt, wantOk: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := fastBcrypt()
			hash, err := b.Hash(test.password, test.salt)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			// Act
			ok, err := b.Verify(hash, test.attempt, test.salt)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

func TestBcrypt_Verify_WrongSalt(t *testing.T) {
	b := fastBcrypt()
	hash, _ := b.Hash("pw1", "salt-one")

	ok, err := b.Verify(hash, "pw1", "salt-two")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ok {
		t.Error("Verify() should reject a different salt")
	}
}

func TestBcrypt_Verify_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-hash"},
		{name: "argon2 hash", hash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := fastBcrypt().Verify(test.hash, "password", testSalt)
			if err == nil {
				t.Errorf("Verify() should return error for %s", test.name)
			}
		})
	}
}

func TestArgon2_Hash(t *testing.T) {
	a := fastArgon2()

	hash, err := a.Hash("testPassword123", testSalt)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Error("Hash() should start with $argon2id$")
	}
	if !strings.Contains(hash, "$v=19$") {
		t.Error("Hash() should contain version 19")
	}
	if len(strings.Split(hash, "$")) != 6 {
		t.Error("Hash() should have 6 parts")
	}
}

func TestArgon2_Hash_UniqueEmbeddedSalts(t *testing.T) {
	a := fastArgon2()

	hash1, _ := a.Hash("samePassword", testSalt)
	hash2, _ := a.Hash("samePassword", testSalt)

	if hash1 == hash2 {
		t.Error("Hash() should generate different hashes with unique embedded salts")
	}
}

func TestArgon2_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		salt     string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", salt: testSalt, wantOk: true},
		{name: "wrong password", password: "correctPassword", attempt: "wrongPassword", salt: testSalt, wantOk: false},
		{name: "case sensitive", password: "correctPassword", attempt: "correctpassword", salt: testSalt, wantOk: false},
		{name: "long password", password: strings.Repeat("z", 200), attempt: strings.Repeat("z", 200), salt: testSalt, wantOk: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			a := fastArgon2()
			hash, _ := a.Hash(test.password, test.salt)

			// Act
			ok, err := a.Verify(hash, test.attempt, test.salt)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

func TestArgon2_Verify_InvalidHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "invalid format", hash: "invalid-hash"},
		{name: "too few parts", hash: "$argon2id$v=19$m=65536,t=3,p=2$salt"},
		{name: "unsupported algorithm", hash: "$argon2i$v=19$m=65536,t=3,p=2$salt$hash"},
		{name: "wrong version", hash: "$argon2id$v=16$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "bad parameters", hash: "$argon2id$v=19$m=x,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := fastArgon2().Verify(test.hash, "password", testSalt)
			if err == nil {
				t.Errorf("Verify() should return error for %s", test.name)
			}
		})
	}
}

func TestArgon2_Verify_AcrossInstances(t *testing.T) {
	// Arrange
	hash, _ := fastArgon2().Hash("test", testSalt)

	// Act
	ok, err := NewArgon2().Verify(hash, "test", testSalt)

	// Assert
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() should read parameters from the hash, not the instance")
	}
}

func TestArgon2_New_Defaults(t *testing.T) {
	a := NewArgon2()

	tests := []struct {
		name     string
		actual   interface{}
		expected interface{}
	}{
		{name: "memory 64MB", actual: a.Memory, expected: uint32(64 * 1024)},
		{name: "iterations 3", actual: a.Iterations, expected: uint32(3)},
		{name: "parallelism 2", actual: a.Parallelism, expected: uint8(2)},
		{name: "salt length 16", actual: a.SaltLength, expected: uint32(16)},
		{name: "key length 32", actual: a.KeyLength, expected: uint32(32)},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if test.actual != test.expected {
				t.Errorf("%s: got %v, want %v", test.name, test.actual, test.expected)
			}
		})
	}
}

func FuzzBcrypt_HashVerify(f *testing.F) {
	f.Add("pw1", testSalt)
	f.Add("", "s")
	f.Add("p@ssw0rd!#$%", "x")
	f.Add(strings.Repeat("a", 128), testSalt)
	f.Add("~!@#$%^&*()_+{}|:<>?", testSalt)

	f.Fuzz(func(t *testing.T, password, salt string) {
		if salt == "" {
			t.Skip()
		}
		b := fastBcrypt()

		hash, err := b.Hash(password, salt)
		if err != nil {
			t.Fatalf("Hash() error = %v", err)
		}

		ok, err := b.Verify(hash, password, salt)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if !ok {
			t.Fatal("Verify() should return true for correct password")
		}
	})
}
