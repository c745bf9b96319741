package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/keyring"
	"github.com/julianstephens/boardprep/internal/storage/postgres"
)

type KeyringCmd struct {
	Set          KeyringSetCmd          `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get          KeyringGetCmd          `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete       KeyringDeleteCmd       `cmd:"" help:"Remove the stored connection string."`
	Status       KeyringStatusCmd       `cmd:"" help:"Check keyring availability and stored secrets."`
	SetAPIKey    KeyringSetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the Gemini API key in the OS keyring."`
	DeleteAPIKey KeyringDeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the stored Gemini API key."`
}

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  Use it with: boardprep --config keyring")
	return nil
}

// KeyringGetCmd retrieves database connection credentials from the OS keyring
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'boardprep keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	secrets := []struct {
		name string
		get  func() (string, error)
	}{
		{"Connection string", keyring.GetConnectionString},
		{"Gemini API key", keyring.GetAPIKey},
	}
	for _, s := range secrets {
		_, err := s.get()
		switch {
		case err == nil:
			fmt.Printf("✓ %s is stored in keyring\n", s.name)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s stored in keyring\n", strings.ToLower(s.name[:1])+s.name[1:])
		default:
			fmt.Printf("⚠ %s: %v\n", s.name, err)
		}
	}
	return nil
}

type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" help:"Gemini API key"`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(strings.TrimSpace(cmd.Key)); err != nil {
		return err
	}
	fmt.Println("✓ Gemini API key stored in OS keyring")
	return nil
}

type KeyringDeleteAPIKeyCmd struct{}

func (cmd *KeyringDeleteAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ Gemini API key deleted from OS keyring")
	return nil
}

// maskPassword hides the password of a URL or DSN connection string
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if u, err := url.Parse(connStr); err == nil {
			return u.Redacted()
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
