package snapstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// Table names for run log tracking. The migrations table is owned by
// golang-migrate and listed here so ClearRunLog can drop it too.
const (
	runsTable       = "tpsreport_runs"
	deliveriesTable = "tpsreport_deliveries"
	migrationsTable = "schema_migrations"
)

// RunLogStoreImpl implements the RunLogStore interface.
type RunLogStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunLogStore = &RunLogStoreImpl{} // Compile-time check

// NewRunLogStore creates a new RunLogStore with the specified backend.
// The run log schema is versioned, so opening the store migrates it to the
// latest version.
func NewRunLogStore(backend schema.DatabaseBackend, connStr string) (contract.RunLogStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetRunLogDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled run logging
		return &RunLogStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Bring the schema up to the latest version
	if err := migrateRunLogDB(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate run log schema: %w", err)
	}

	return &RunLogStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// BeginRun creates a new run record and returns its unique ID. IDs are
// generated from the clock rather than autoincrement so the same migrations
// work across all backends.
func (rs *RunLogStoreImpl) BeginRun(startTime time.Time, guid string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	runID := time.Now().UnixNano()
	quotedTableName := quoteTableName(runsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, dashboard_guid, start_time, config_params) VALUES ($1, $2, $3, $4)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, dashboard_guid, start_time, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := rs.db.Exec(query, runID, guid, toEpochMillis(startTime), string(configJSON)); err != nil {
		return 0, fmt.Errorf("failed to insert report run: %w", err)
	}

	return runID, nil
}

// EndRun finalizes the run with its analysis outcome.
func (rs *RunLogStoreImpl) EndRun(runID int64, endTime time.Time, trafficStatus, capacityStatus schema.StatusLevel, trendCount int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, traffic_status = $2, capacity_status = $3, trend_count = $4 WHERE run_id = $5`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, traffic_status = ?, capacity_status = ?, trend_count = ? WHERE run_id = ?`, quotedTableName)
	}

	if _, err := rs.db.Exec(query, toEpochMillis(endTime), string(trafficStatus), string(capacityStatus), trendCount, runID); err != nil {
		return fmt.Errorf("failed to update report run: %w", err)
	}

	return nil
}

// RecordDelivery stores the outcome of one delivery attempt.
func (rs *RunLogStoreImpl) RecordDelivery(runID int64, channel string, success bool, detail string) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(deliveriesTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, channel, success, detail, delivered_at) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, channel, success, detail, delivered_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := rs.db.Exec(query, runID, channel, success, detail, toEpochMillis(time.Now())); err != nil {
		return fmt.Errorf("failed to insert delivery record: %w", err)
	}

	return nil
}

// GetAllRuns retrieves all report runs from the store.
func (rs *RunLogStoreImpl) GetAllRuns() ([]schema.ReportRunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, dashboard_guid, start_time, end_time, config_params, traffic_status, capacity_status, trend_count FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRunRecord

	for rows.Next() {
		var record schema.ReportRunRecord
		var startMs int64
		var endMs *int64
		var trafficStatus, capacityStatus *string
		var trendCount *int32

		if err := rows.Scan(&record.RunID, &record.DashboardGUID, &startMs, &endMs, &record.ConfigParams, &trafficStatus, &capacityStatus, &trendCount); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}

		record.StartTime = fromEpochMillis(startMs)
		if endMs != nil {
			endTime := fromEpochMillis(*endMs)
			record.EndTime = &endTime
		}
		if trafficStatus != nil {
			record.TrafficStatus = *trafficStatus
		}
		if capacityStatus != nil {
			record.CapacityStatus = *capacityStatus
		}
		if trendCount != nil {
			record.TrendCount = *trendCount
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}

	return results, nil
}

// GetAllDeliveries retrieves all delivery records from the store.
func (rs *RunLogStoreImpl) GetAllDeliveries() ([]schema.DeliveryRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(deliveriesTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, channel, success, detail, delivered_at FROM %s ORDER BY delivered_at, run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DeliveryRecord

	for rows.Next() {
		var record schema.DeliveryRecord
		var deliveredMs int64

		if err := rows.Scan(&record.RunID, &record.Channel, &record.Success, &record.Detail, &deliveredMs); err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		record.DeliveredAt = fromEpochMillis(deliveredMs)

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery records: %w", err)
	}

	return results, nil
}

// GetStatus returns status information about the run log.
func (rs *RunLogStoreImpl) GetStatus() (schema.RunLogStatus, error) {
	status := schema.RunLogStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, rs.backend))
	row := rs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, rs.backend))
		row = rs.db.QueryRow(lastRunQuery)
		var lastMs int64
		if err := row.Scan(&status.LastRunID, &lastMs); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = fromEpochMillis(lastMs)

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, rs.backend))
		row = rs.db.QueryRow(oldestRunQuery)
		var oldestMs int64
		if err := row.Scan(&oldestMs); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = fromEpochMillis(oldestMs)
	}

	// Get total deliveries
	deliveriesQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(deliveriesTable, rs.backend))
	row = rs.db.QueryRow(deliveriesQuery)
	if err := row.Scan(&status.TotalDeliveries); err != nil {
		return status, fmt.Errorf("failed to get total deliveries: %w", err)
	}

	// Get table sizes
	tables := []string{runsTable, deliveriesTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, rs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = rs.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// Close closes the underlying connection.
func (rs *RunLogStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
