package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

type secretOps struct {
	name string
	get  func() (string, error)
	set  func(string) error
	del  func() error
	val  string
}

func allSecrets() []secretOps {
	return []secretOps{
		{"connection string", GetConnectionString, SetConnectionString, DeleteConnectionString, "postgres://student@localhost:5432/boardprep?sslmode=disable"},
		{"api key", GetAPIKey, SetAPIKey, DeleteAPIKey, "AIza-test-key"},
	}
}

func TestSetGetDelete(t *testing.T) {
	for _, s := range allSecrets() {
		t.Run(s.name, func(t *testing.T) {
			gokeyring.MockInit()

			if err := s.set(s.val); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			got, err := s.get()
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if got != s.val {
				t.Errorf("get = %q, want %q", got, s.val)
			}

			if err := s.del(); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if _, err := s.get(); !errors.Is(err, ErrNotFound) {
				t.Errorf("get after delete error = %v, want %v", err, ErrNotFound)
			}
			if err := s.del(); !errors.Is(err, ErrNotFound) {
				t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
			}
		})
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	for _, s := range allSecrets() {
		if err := s.set(""); err == nil {
			t.Errorf("%s: set(\"\") should fail", s.name)
		}
	}
}

func TestSecretsAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("key-1"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("connection string should be unset, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	defer gokeyring.MockInit()

	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
	if _, err := GetAPIKey(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrKeyringUnavailable)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
