// Package sqlitedb opens an in-memory SQLite database carrying the service
// schema, for repository and handler tests.
package sqlitedb

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

const dsn = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// Open returns a fresh database. A single connection keeps every statement on
// the same in-memory database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range strings.Split(schema, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") && !strings.Contains(stmt, "\n") {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}

	return db
}

type Fixtures struct {
	ClientID   int64
	VehicleID  int64
	DealID     int64
	InvestorID int64
}

// Seed inserts one row per owner table.
func Seed(t *testing.T, db *gorm.DB) Fixtures {
	t.Helper()

	var f Fixtures
	f.ClientID = insert(t, db, "INSERT INTO clients (name, phone) VALUES (?, ?) RETURNING id", "Lucía Romero", "600111222")
	f.VehicleID = insert(t, db, "INSERT INTO vehicles (plate, brand, model) VALUES (?, ?, ?) RETURNING id", "1234ABC", "Seat", "León")
	f.DealID = insert(t, db, "INSERT INTO deals (number, client_id, vehicle_id) VALUES (?, ?, ?) RETURNING id", "D-0001", f.ClientID, f.VehicleID)
	f.InvestorID = insert(t, db, "INSERT INTO investors (name) VALUES (?) RETURNING id", "Capital Norte")
	return f
}

func AddVehicle(t *testing.T, db *gorm.DB, plate, brand, model string) int64 {
	t.Helper()
	return insert(t, db, "INSERT INTO vehicles (plate, brand, model) VALUES (?, ?, ?) RETURNING id", plate, brand, model)
}

func insert(t *testing.T, db *gorm.DB, query string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Raw(query, args...).Scan(&id).Error)
	require.NotZero(t, id)
	return id
}

func AddDeposit(t *testing.T, db *gorm.DB, clientID, vehicleID int64, status string) int64 {
	t.Helper()
	return insert(t, db,
		"INSERT INTO deposits (client_id, vehicle_id, status, start_date, created_at, updated_at) VALUES (?, ?, ?, DATE('now'), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id",
		clientID, vehicleID, status)
}
