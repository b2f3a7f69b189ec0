package output

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

const createOwnerPlots = `CREATE TABLE IF NOT EXISTS owner_plots (
	seq INTEGER PRIMARY KEY,
	email TEXT NOT NULL,
	full_name TEXT NOT NULL,
	plot_number TEXT NOT NULL CHECK (plot_number <> ''),
	phone TEXT NOT NULL
)`

// WriteSQLite replaces the owner_plots table of the database at path with
// records, keeping their order in the seq column.
func WriteSQLite(path string, records []models.NormalizedRecord) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createOwnerPlots); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM owner_plots`); err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO owner_plots (seq, email, full_name, plot_number, phone) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i+1, r.Email, r.FullName, r.PlotNumber, r.Phone); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// ReadSQLite loads records from the owner_plots table in seq order.
func ReadSQLite(path string) ([]models.NormalizedRecord, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT email, full_name, plot_number, phone FROM owner_plots ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.NormalizedRecord
	for rows.Next() {
		var r models.NormalizedRecord
		if err := rows.Scan(&r.Email, &r.FullName, &r.PlotNumber, &r.Phone); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
