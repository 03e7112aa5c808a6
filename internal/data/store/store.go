package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Driver names registered by the imported SQL drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LogEntryRepository reads and writes duty intervals stored per trip.
type LogEntryRepository interface {
	ListByTrip(ctx context.Context, tripID int64) ([]model.RawInterval, error)
	Insert(ctx context.Context, tripID int64, rec model.RawInterval) error
}

var _ LogEntryRepository = (*LogEntryRepo)(nil)

// LogEntryRepo is a LogEntryRepository over the trips_logentry table.
type LogEntryRepo struct {
	db     *sql.DB
	driver string
}

// NewLogEntryRepo wraps an open database. driver selects the placeholder
// style.
func NewLogEntryRepo(db *sql.DB, driver string) *LogEntryRepo {
	return &LogEntryRepo{db: db, driver: driver}
}

// DriverFor picks the SQL driver for a DSN: postgres URLs and key=value
// strings go to lib/pq, anything else is a sqlite path.
func DriverFor(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn
	case strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname="):
		return DriverPostgres, dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://")
	default:
		return DriverSQLite, dsn
	}
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, string, error) {
	if dsn == "" {
		return nil, "", fmt.Errorf("database dsn is empty")
	}
	driver, source := DriverFor(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("%s connect: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("%s ping: %w", driver, err)
	}
	return db, driver, nil
}

// Migrate creates the log entry table when missing.
func (r *LogEntryRepo) Migrate(ctx context.Context) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == DriverPostgres {
		id = "BIGSERIAL PRIMARY KEY"
	}
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS trips_logentry (
			id ` + id + `,
			trip_id BIGINT NOT NULL,
			log_date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			status VARCHAR(50) NOT NULL,
			location TEXT,
			odometer_reading DOUBLE PRECISION,
			type VARCHAR(20)
		)`,
		`CREATE INDEX IF NOT EXISTS trips_logentry_trip_date ON trips_logentry (trip_id, log_date)`,
	}
	for _, stmt := range ddl {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}

// ListByTrip returns a trip's intervals ordered by date and start time.
func (r *LogEntryRepo) ListByTrip(ctx context.Context, tripID int64) ([]model.RawInterval, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(
		`SELECT id, log_date, start_time, end_time, status, location, odometer_reading, type FROM trips_logentry WHERE trip_id = ? ORDER BY log_date, start_time`),
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("query trip %d: %w", tripID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.RawInterval
	for rows.Next() {
		var (
			id        int64
			logDate   timeText
			start     timeText
			end       timeText
			status    string
			location  sql.NullString
			odometer  sql.NullFloat64
			entryType sql.NullString
		)
		if err := rows.Scan(&id, &logDate, &start, &end, &status, &location, &odometer, &entryType); err != nil {
			return nil, fmt.Errorf("scan trip %d: %w", tripID, err)
		}

		rec := model.RawInterval{
			ID:        &id,
			LogDate:   logDate.date(),
			StartTime: start.ptr(),
			EndTime:   end.ptr(),
			Status:    status,
			Type:      entryType.String,
		}
		if location.Valid {
			rec.Location = &location.String
		}
		if odometer.Valid {
			rec.OdometerReading = &odometer.Float64
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// Insert stores one interval for a trip.
func (r *LogEntryRepo) Insert(ctx context.Context, tripID int64, rec model.RawInterval) error {
	_, err := r.db.ExecContext(ctx, r.rebind(
		`INSERT INTO trips_logentry (trip_id, log_date, start_time, end_time, status, location, odometer_reading, type) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		tripID, rec.LogDate, deref(rec.StartTime), deref(rec.EndTime), rec.Status,
		nullString(rec.Location), nullFloat(rec.OdometerReading), nullString(&rec.Type),
	)
	if err != nil {
		return fmt.Errorf("inserting log entry: %w", err)
	}
	return nil
}

// LoadTrip reads a trip and groups its intervals by log date.
func LoadTrip(ctx context.Context, repo LogEntryRepository, tripID int64) (model.DailyLogSet, error) {
	records, err := repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	set := make(model.DailyLogSet)
	for _, rec := range records {
		set[rec.LogDate] = append(set[rec.LogDate], rec)
	}
	return set, nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (r *LogEntryRepo) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
