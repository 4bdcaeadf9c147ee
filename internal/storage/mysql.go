package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"sfstage/internal/domain"
)

const stageTable = "staged_components"

// MySQLStageStore keeps the stage in a MySQL table so a team can share it.
//
// Save only deletes rows this store loaded and the caller no longer stages.
// Components other users staged after Load are left alone.
type MySQLStageStore struct {
	db      *sql.DB
	table   string
	timeout time.Duration
	loaded  map[stageKey]bool
}

type stageKey struct {
	typeName string
	fullName string
}

// NewMySQLStageStore opens (lazily) the database named in dsn.
func NewMySQLStageStore(dsn string) (*MySQLStageStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid SFSTAGE_DSN: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("invalid SFSTAGE_DSN: no database name")
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &MySQLStageStore{
		db:      db,
		table:   stageTable,
		timeout: 10 * time.Second,
		loaded:  make(map[stageKey]bool),
	}, nil
}

// Close closes the database handle
func (s *MySQLStageStore) Close() error {
	return s.db.Close()
}

func (s *MySQLStageStore) ensureTable(ctx context.Context) error {
	query := "CREATE TABLE IF NOT EXISTS `" + s.table + "` (" +
		"`type` VARCHAR(255) NOT NULL," +
		"`full_name` VARCHAR(255) NOT NULL," +
		"`file_path` TEXT NULL," +
		"`staged_at` DATETIME NOT NULL," +
		"PRIMARY KEY (`type`, `full_name`))"
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s table: %w", s.table, err)
	}
	return nil
}

// Load returns all staged components
func (s *MySQLStageStore) Load() ([]domain.StagedComponent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT `type`, `full_name`, `file_path` FROM `"+s.table+"` ORDER BY `type`, `full_name`")
	if err != nil {
		return nil, fmt.Errorf("query stage: %w", err)
	}
	defer rows.Close()

	var components []domain.StagedComponent
	loaded := make(map[stageKey]bool)
	for rows.Next() {
		var c domain.StagedComponent
		var filePath sql.NullString
		if err := rows.Scan(&c.Type, &c.FullName, &filePath); err != nil {
			return nil, fmt.Errorf("scan stage row: %w", err)
		}
		c.FilePath = filePath.String
		components = append(components, c)
		loaded[stageKey{c.Type, c.FullName}] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stage rows: %w", err)
	}
	s.loaded = loaded
	return components, nil
}

// Save upserts components and deletes the loaded rows missing from them, in
// one transaction. Nothing changes when any statement fails.
func (s *MySQLStageStore) Save(components []domain.StagedComponent) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stage update: %w", err)
	}
	defer tx.Rollback()

	staged := make(map[stageKey]bool, len(components))
	now := time.Now().UTC()
	for _, c := range components {
		staged[stageKey{c.Type, c.FullName}] = true
		filePath := sql.NullString{String: c.FilePath, Valid: c.FilePath != ""}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO `"+s.table+"` (`type`, `full_name`, `file_path`, `staged_at`) VALUES (?, ?, ?, ?) "+
				"ON DUPLICATE KEY UPDATE `file_path` = VALUES(`file_path`)",
			c.Type, c.FullName, filePath, now,
		); err != nil {
			return fmt.Errorf("insert %s:%s: %w", c.Type, c.FullName, err)
		}
	}

	for key := range s.loaded {
		if staged[key] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM `"+s.table+"` WHERE `type` = ? AND `full_name` = ?",
			key.typeName, key.fullName,
		); err != nil {
			return fmt.Errorf("delete %s:%s: %w", key.typeName, key.fullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stage update: %w", err)
	}
	s.loaded = staged
	return nil
}
