// Package apply connects to a user's Oracle database and runs a generated
// migration against it. Options decide how cautious the run is: dry run,
// transaction wrapping, and whether destructive statements are allowed.
package apply

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/godror/godror" // registers the "godror" driver
	log "github.com/mgutz/logxi/v1"
)

var logger = log.New("oradialect:apply")

// DriverName is the database/sql driver used for Oracle connections.
const DriverName = "godror"

// Options struct contains all setting available for user to choose during apply command.
type Options struct {
	DSN                   string
	DryRun                bool
	Transaction           bool
	AllowNonTransactional bool
	Unsafe                bool
	Out                   io.Writer
}

// Applier is a struct that contains data from a user to apply actual migration.
type Applier struct {
	db      *sql.DB
	options Options
	out     io.Writer
}

// NewApplier returns a pointer to Applier for user use, with provided options.
func NewApplier(options Options) *Applier {
	out := options.Out
	if out == nil {
		out = io.Discard
	}
	return &Applier{
		options: options,
		out:     out,
	}
}

// Open opens an Oracle connection pool for dsn and pings it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("no DSN provided")
	}
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}
	return db, nil
}

// Connect establishes a connection with a user database and pings it to test a connection.
func (a *Applier) Connect(ctx context.Context) error {
	db, err := Open(ctx, a.options.DSN)
	if err != nil {
		return err
	}
	logger.Debug("connected", "driver", DriverName)
	a.db = db
	return nil
}

// DB returns the connection opened by Connect, or nil.
func (a *Applier) DB() *sql.DB { return a.db }

// Close closes a connection with a database from applier.
func (a *Applier) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *Applier) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *Applier) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// Apply runs statements. A dry run only prints the plan; otherwise the
// statements execute inside a transaction when requested and possible.
func (a *Applier) Apply(ctx context.Context, statements []string, preflight *PreflightResult) error {
	statements = cleanStatements(statements)
	if preflight == nil {
		preflight = PreflightChecks(statements, a.options.Unsafe)
	}

	if a.options.DryRun {
		return a.dryRun(statements, preflight)
	}

	if len(preflight.Errors) > 0 {
		return fmt.Errorf("preflight checks failed: %s", strings.Join(preflight.Errors, "; "))
	}

	if a.db == nil {
		return fmt.Errorf("not connected; call Connect first")
	}

	if a.options.Transaction && !preflight.IsTransactional {
		if !a.options.AllowNonTransactional {
			return fmt.Errorf("migration contains non-transactional DDL statements; use --allow-non-transactional to proceed")
		}
	}

	if a.options.Transaction && preflight.IsTransactional {
		return a.applyWithTransaction(ctx, statements)
	}

	return a.applyWithoutTransaction(ctx, statements)
}

// cleanStatements drops empty statements and the trailing ";" that Oracle
// rejects when a statement is sent through the driver.
func cleanStatements(statements []string) []string {
	out := make([]string, 0, len(statements))
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func truncateSQL(stmt string) string {
	stmt = strings.Join(strings.Fields(stmt), " ")
	if len(stmt) > 80 {
		return stmt[:77] + "..."
	}
	return stmt
}

func (a *Applier) dryRun(statements []string, preflight *PreflightResult) error {
	a.println("=== DRY RUN MODE ===")

	a.println("--- Preflight Checks ---")
	if len(preflight.Warnings) == 0 {
		a.println("No warnings")
	} else {
		for _, w := range preflight.Warnings {
			a.printf("[%s] %s\n", w.Level, w.Message)
			if w.SQL != "" {
				a.printf("    SQL: %s\n", w.SQL)
			}
		}
	}

	a.println("--- Transaction Safety ---")
	if preflight.IsTransactional {
		a.println("All statements are transaction-safe")
	} else {
		a.println("Migration is NOT transaction-safe")
		for _, reason := range preflight.NonTxReasons {
			a.printf("  - %s\n", reason)
		}
	}

	a.println("--- Statements to Execute ---")
	for i, stmt := range statements {
		a.printf("%d. %s\n\n", i+1, stmt)
	}

	if len(preflight.Errors) > 0 {
		return fmt.Errorf("preflight checks failed: %s", strings.Join(preflight.Errors, "; "))
	}

	if a.options.Transaction && !preflight.IsTransactional && !a.options.AllowNonTransactional {
		return fmt.Errorf("preflight checks failed: non-transactional DDL detected without --allow-non-transactional flag")
	}

	a.println("=== DRY RUN COMPLETE ===")
	a.println("All preflight checks passed. Run without --dry-run to apply.")
	return nil
}

func (a *Applier) applyWithTransaction(ctx context.Context, statements []string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	logger.Debug("begin")

	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		start := time.Now()
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			logger.Error("statement failed", "index", i+1, "err", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("execute failed: %w; rollback also failed: %v", err, rbErr)
			}
			logger.Debug("rollback")
			return fmt.Errorf("execute failed (rolled back): %w\n  Statement: %s", err, truncateSQL(stmt))
		}
		logger.Debug("executed", "index", i+1, "elapsed", time.Since(start))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Debug("commit")

	a.printf("Successfully applied %d statements\n", len(statements))
	return nil
}

func (a *Applier) applyWithoutTransaction(ctx context.Context, statements []string) error {
	a.println("Applying migration without transaction wrapper (DDL statements cause implicit commits)")

	successCount := 0
	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		start := time.Now()
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			logger.Error("statement failed", "index", i+1, "err", err)
			return fmt.Errorf("statement %d failed: %w\n  Statement: %s\n  %d statements were already applied and cannot be automatically rolled back",
				i+1, err, truncateSQL(stmt), successCount)
		}
		logger.Debug("executed", "index", i+1, "elapsed", time.Since(start))
		successCount++
	}

	logger.Info("migration applied", "statements", successCount)
	a.printf("Successfully applied %d statements\n", len(statements))
	return nil
}
