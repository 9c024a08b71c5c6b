package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerline-dev/ledgerline/internal/audit"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// env bundles the collaborators every workspace-scoped command needs: the
// parsed config, the open store, and a logger.
type env struct {
	dir   string
	cfg   *config.Config
	store *store.Store
	log   *zap.Logger
}

// openEnv loads ledgerline.yaml from dir and opens the database it names.
func openEnv(dir string, verbose bool) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "ledgerline.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	dbPath := cfg.Database.Path
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(absDir, dbPath)
	}
	st, err := store.Open(dbPath, log)
	if err != nil {
		return nil, err
	}

	return &env{dir: absDir, cfg: cfg, store: st, log: log}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// audit appends an entry to the workspace audit log when auditing is
// enabled. Failures are reported as warnings, never as command errors.
func (e *env) audit(action, details, sessionID string) {
	if !e.cfg.Audit.Enabled {
		return
	}
	entry := audit.Entry{
		Timestamp: time.Now().UTC(),
		ClientID:  e.cfg.Business.ClientID,
		Action:    action,
		Details:   details,
		SessionID: sessionID,
	}
	if err := audit.Append(filepath.Join(e.dir, e.cfg.Audit.Dir), []audit.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
