// Package database opens the SQLite database and initializes its tables.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DBControl struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the database at the given path and
// ensures the schema exists.
func InitDB(path string) (dbc *DBControl, err error) {
	var dc DBControl

	dc.DB, err = sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %v", path, err)
	}

	if err := dc.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %v", err)
	}
	return &dc, nil
}

// Close closes the underlying database handle.
func (dc *DBControl) Close() error {
	return dc.DB.Close()
}

// initTables initializes the SQL tables.
func (dc *DBControl) initTables() error {
	tx, err := dc.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := initChannelsTable(tx); err != nil {
		return err
	}

	if err := initEpisodesTable(tx); err != nil {
		return err
	}

	return tx.Commit()
}
