package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/persistence"
)

type DebugCmd struct {
	Path DebugPathCmd `cmd:"" help:"Show storage and log locations."`
	Dump DebugDumpCmd `cmd:"" help:"Dump the stored document as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"store": ctx.Store.GetConfigPath(),
		"log":   logger.Path(),
	}
	if mgr, err := ctx.BackupManager(); err == nil {
		output["backups"] = mgr.GetBackupDir()
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Corrupt bool `help:"Dump the preserved corrupt document instead."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	key := constants.StorageKey
	if cmd.Corrupt {
		key = constants.CorruptStorageKey
	}

	data, found, err := ctx.Store.Read(key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("nothing stored under %s", key)
	}
	if cmd.Corrupt {
		fmt.Println(string(data))
		return nil
	}

	d, _, err := persistence.Decode(data)
	if err != nil {
		return err
	}
	jsonBytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
