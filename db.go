package pixelsheet

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB records completed conversions in a sqlite database so repeated runs
// over the same sources can be inspected later.
type DB struct {
	db *sql.DB
}

// Conversion is one row of the history.
type Conversion struct {
	ID      int64
	Source  string
	CRC     string
	Width   int
	Height  int
	Colors  int
	Output  string
	Created time.Time
}

// OpenDB opens, creating if necessary, the history database at file.
func OpenDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, source TEXT NOT NULL, crc TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, colors INTEGER NOT NULL, output TEXT NOT NULL, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Record inserts one conversion and returns its row id.
func (db *DB) Record(c Conversion) (int64, error) {
	result, err := db.db.Exec("INSERT INTO conversion (source, crc, width, height, colors, output) VALUES (?, ?, ?, ?, ?, ?)",
		c.Source, c.CRC, c.Width, c.Height, c.Colors, c.Output)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// History returns all recorded conversions, newest first.
func (db *DB) History() ([]Conversion, error) {
	rows, err := db.db.Query("SELECT id, source, crc, width, height, colors, output, created FROM conversion ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.Source, &c.CRC, &c.Width, &c.Height, &c.Colors, &c.Output, &c.Created); err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}

	return conversions, rows.Err()
}

// FindBySource returns the most recent conversion of the file with the given
// CRC, or nil if it has never been converted.
func (db *DB) FindBySource(crc string) (*Conversion, error) {
	var c Conversion
	switch err := db.db.QueryRow("SELECT id, source, crc, width, height, colors, output, created FROM conversion WHERE crc = ? ORDER BY created DESC, id DESC LIMIT 1", crc).Scan(&c.ID, &c.Source, &c.CRC, &c.Width, &c.Height, &c.Colors, &c.Output, &c.Created); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &c, nil
	default:
		return nil, err
	}
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.db.Close()
}
