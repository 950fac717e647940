package analysis

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func ConnectToDatabase(config Configuration) (*sqlx.DB, error) {
	var dbURI string
	switch config.DBDriver {
	case "mysql":
		port := "3306"
		dbURI = fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", config.User, config.Passwd, config.Host, port, config.DBName)
	case "sqlite":
		dbURI = config.DBPath
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.DBDriver)
	}
	db, err := sqlx.Connect(config.DBDriver, dbURI)
	if err != nil {
		return nil, err
	}
	if err := EnsureCatalog(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const catalogSchema = `CREATE TABLE IF NOT EXISTS AnalysisRuns (
	Pipeline   VARCHAR(32)   NOT NULL,
	InputPath  VARCHAR(1024) NOT NULL,
	OutputPath VARCHAR(1024) NOT NULL,
	Provenance VARCHAR(16)   NOT NULL,
	Entries    BIGINT        NOT NULL,
	StdDev     DOUBLE        NOT NULL,
	Sigma      DOUBLE        NOT NULL,
	CreatedAt  VARCHAR(32)   NOT NULL
)`

func EnsureCatalog(db *sqlx.DB) error {
	if _, err := db.Exec(catalogSchema); err != nil {
		return fmt.Errorf("error creating catalog table: %w", err)
	}
	return nil
}

// RunEntry is one line of the run catalog. Fields that do not apply to a
// pipeline are left at zero.
type RunEntry struct {
	Pipeline   string  `db:"Pipeline"`
	InputPath  string  `db:"InputPath"`
	OutputPath string  `db:"OutputPath"`
	Provenance string  `db:"Provenance"`
	Entries    int64   `db:"Entries"`
	StdDev     float64 `db:"StdDev"`
	Sigma      float64 `db:"Sigma"`
	CreatedAt  string  `db:"CreatedAt"`
}

func RecordRun(db *sqlx.DB, entry RunEntry) error {
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	query := `INSERT INTO AnalysisRuns
		(Pipeline, InputPath, OutputPath, Provenance, Entries, StdDev, Sigma, CreatedAt)
		VALUES (:Pipeline, :InputPath, :OutputPath, :Provenance, :Entries, :StdDev, :Sigma, :CreatedAt)`
	if _, err := db.NamedExec(query, entry); err != nil {
		return fmt.Errorf("error recording %s run: %w", entry.Pipeline, err)
	}
	logger.Info(fmt.Sprintf("Recorded %s run for %s", entry.Pipeline, entry.InputPath), "database")
	return nil
}

func ListRuns(db *sqlx.DB, pipeline string) ([]RunEntry, error) {
	runs := []RunEntry{}
	query := db.Rebind("SELECT Pipeline, InputPath, OutputPath, Provenance, Entries, StdDev, Sigma, CreatedAt FROM AnalysisRuns WHERE Pipeline = ? ORDER BY CreatedAt")
	if err := db.Select(&runs, query, pipeline); err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	return runs, nil
}

// CatalogRun records entry unless the catalog is disabled. Failures are
// reported to logger and never fail a run that produced its outputs.
func CatalogRun(config Configuration, entry RunEntry, logger Logger) {
	if config.NoDB {
		return
	}
	db, err := ConnectToDatabase(config)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err))
		return
	}
	defer db.Close()

	if err := RecordRun(db, entry); err != nil {
		logger.Error(err.Error())
	}
}
