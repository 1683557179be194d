package repo

const (
	queryInsertEntry = `
		INSERT INTO transcripts (room_id, role, message, spoken_at, created_at)
		VALUES (:room_id, :role, :message, :spoken_at, :created_at)`

	queryListEntries = `
		SELECT role, message, spoken_at
		FROM transcripts
		WHERE room_id = :room_id
		ORDER BY spoken_at, id`

	queryCountEntries = `SELECT COUNT(*) FROM transcripts WHERE room_id = :room_id`

	queryClearEntries = `DELETE FROM transcripts WHERE room_id = :room_id`

	queryUpsertOrder = `
		INSERT INTO orders (room_id, order_id, status, data, updated_at)
		VALUES (:room_id, :order_id, :status, :data, :updated_at)
		ON CONFLICT (room_id) DO UPDATE SET
			order_id = excluded.order_id,
			status = excluded.status,
			data = excluded.data,
			updated_at = excluded.updated_at`

	queryGetOrder = `SELECT data FROM orders WHERE room_id = :room_id`

	queryInsertScore = `
		INSERT INTO sentiment_records (room_id, label, polarity, confidence, data, recorded_at)
		VALUES (:room_id, :label, :polarity, :confidence, :data, :recorded_at)`

	queryListScores = `
		SELECT data
		FROM sentiment_records
		WHERE room_id = :room_id
		ORDER BY recorded_at, id`

	queryUpsertSummary = `
		INSERT INTO call_summaries (room_id, summary_id, outcome, data, generated_at)
		VALUES (:room_id, :summary_id, :outcome, :data, :generated_at)
		ON CONFLICT (room_id) DO UPDATE SET
			summary_id = excluded.summary_id,
			outcome = excluded.outcome,
			data = excluded.data,
			generated_at = excluded.generated_at`

	queryGetSummary = `SELECT data FROM call_summaries WHERE room_id = :room_id`
)

// schema is applied in order by EnsureSchema. {{serial}} is the dialect's
// auto-increment primary key.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS transcripts (
		id {{serial}},
		room_id TEXT NOT NULL,
		role TEXT NOT NULL,
		message TEXT NOT NULL,
		spoken_at DOUBLE PRECISION NOT NULL,
		created_at DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transcripts_room ON transcripts (room_id, spoken_at)`,
	`CREATE TABLE IF NOT EXISTS orders (
		room_id TEXT PRIMARY KEY,
		order_id TEXT,
		status TEXT NOT NULL,
		data TEXT NOT NULL,
		updated_at DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sentiment_records (
		id {{serial}},
		room_id TEXT NOT NULL,
		label TEXT NOT NULL,
		polarity DOUBLE PRECISION NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		data TEXT NOT NULL,
		recorded_at DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sentiment_records_room ON sentiment_records (room_id, recorded_at)`,
	`CREATE TABLE IF NOT EXISTS call_summaries (
		room_id TEXT PRIMARY KEY,
		summary_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		data TEXT NOT NULL,
		generated_at DOUBLE PRECISION NOT NULL
	)`,
}
