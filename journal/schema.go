package journal

const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	snapshot_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	records INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(snapshot_id),
	sheet_row INTEGER NOT NULL,
	entry_time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	status TEXT NOT NULL,
	entry_price REAL NOT NULL,
	entry_quantity REAL NOT NULL,
	entry_capital REAL NOT NULL,
	last_exit DATETIME NOT NULL,
	fees REAL NOT NULL,
	total_pnl REAL NOT NULL,
	total_pct REAL NOT NULL,
	day TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, sheet_row)
);

CREATE TABLE IF NOT EXISTS legs (
	snapshot_id TEXT NOT NULL,
	sheet_row INTEGER NOT NULL,
	leg INTEGER NOT NULL,
	pnl REAL NOT NULL,
	pnl_pct REAL NOT NULL,
	allocation_pct REAL NOT NULL,
	exit_time DATETIME,
	PRIMARY KEY (snapshot_id, sheet_row, leg)
);

CREATE INDEX IF NOT EXISTS idx_trades_day ON trades(snapshot_id, day);
`
