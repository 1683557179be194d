package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	"github.com/Chative-core-poc-v1/bookseller/pkg/database"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// SQLRepository implements every durable repository over one sqlx pool.
// Orders, scores and summaries are stored as JSON blobs next to the columns
// needed for lookups; timestamps are Unix seconds so both dialects agree.
type SQLRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewSQLRepository(db *sqlx.DB, m *metrics.Metrics) *SQLRepository {
	return &SQLRepository{db: db, metrics: m, now: time.Now}
}

// EnsureSchema creates the tables and indexes when they do not exist.
func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.db.DriverName() == database.DriverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, strings.ReplaceAll(stmt, "{{serial}}", serial)); err != nil {
			logx.Error().Err(err).Msg("failed to apply schema")
			return errx.WrapDB(err)
		}
	}
	return nil
}

type transcriptRow struct {
	Role     string  `db:"role"`
	Message  string  `db:"message"`
	SpokenAt float64 `db:"spoken_at"`
}

type blobRow struct {
	Data string `db:"data"`
}

func roomArgs(roomID string) map[string]any {
	return map[string]any{"room_id": roomID}
}

// named expands :name parameters and rebinds them for the pool's driver.
func named(q sqlx.ExtContext, query string, arg any) (string, []any, error) {
	expanded, args, err := sqlx.Named(query, arg)
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return q.Rebind(expanded), args, nil
}

func (r *SQLRepository) exec(ctx context.Context, q sqlx.ExtContext, op, query string, arg any) (err error) {
	defer func() { r.metrics.RecordStore("sql", op, err) }()

	stmt, args, err := named(q, query, arg)
	if err != nil {
		logx.Error().Err(err).Str("operation", op).Msg("named query preparation err")
		return err
	}
	if _, err := q.ExecContext(ctx, stmt, args...); err != nil {
		logx.Error().Err(err).Str("operation", op).Msg("database error")
		return errx.WrapDB(err)
	}
	return nil
}

func (r *SQLRepository) getBlob(ctx context.Context, q sqlx.ExtContext, op, query, roomID string, dest any) (err error) {
	defer func() { r.metrics.RecordStore("sql", op, err) }()

	stmt, args, err := named(q, query, roomArgs(roomID))
	if err != nil {
		return err
	}
	var row blobRow
	if err := sqlx.GetContext(ctx, q, &row, stmt, args...); err != nil {
		wrapped := errx.WrapDB(err)
		if !errx.IsNotFound(wrapped) {
			logx.Error().Err(err).Str("operation", op).Str("room_id", roomID).Msg("database error")
		}
		return wrapped
	}
	if err := json.Unmarshal([]byte(row.Data), dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", op, err)
	}
	return nil
}

// ================ Transcripts ================

func (r *SQLRepository) AppendEntry(ctx context.Context, roomID string, entry model.TranscriptEntry) error {
	return r.exec(ctx, r.db, "append_entry", queryInsertEntry, map[string]any{
		"room_id":    roomID,
		"role":       entry.Role.String(),
		"message":    entry.Message,
		"spoken_at":  entry.Timestamp,
		"created_at": unixSeconds(r.now()),
	})
}

func (r *SQLRepository) ListEntries(ctx context.Context, roomID string) (entries []model.TranscriptEntry, err error) {
	defer func() { r.metrics.RecordStore("sql", "list_entries", err) }()

	stmt, args, err := named(r.db, queryListEntries, roomArgs(roomID))
	if err != nil {
		return nil, err
	}
	var rows []transcriptRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		logx.Error().Err(err).Str("room_id", roomID).Msg("failed to list transcript entries")
		return nil, errx.WrapDB(err)
	}

	entries = make([]model.TranscriptEntry, 0, len(rows))
	for _, row := range rows {
		e := model.TranscriptEntry{Message: row.Message, Timestamp: row.SpokenAt}
		if err := e.Role.UnmarshalText([]byte(row.Role)); err != nil {
			return nil, fmt.Errorf("transcript entry of room %s: %w", roomID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *SQLRepository) CountEntries(ctx context.Context, roomID string) (n int, err error) {
	defer func() { r.metrics.RecordStore("sql", "count_entries", err) }()

	stmt, args, err := named(r.db, queryCountEntries, roomArgs(roomID))
	if err != nil {
		return 0, err
	}
	if err := r.db.GetContext(ctx, &n, stmt, args...); err != nil {
		return 0, errx.WrapDB(err)
	}
	return n, nil
}

func (r *SQLRepository) ClearEntries(ctx context.Context, roomID string) error {
	return r.exec(ctx, r.db, "clear_entries", queryClearEntries, roomArgs(roomID))
}

// ================ Orders ================

func (r *SQLRepository) UpsertOrder(ctx context.Context, roomID string, order model.OrderDraft) error {
	return r.upsertOrder(ctx, r.db, roomID, order)
}

func (r *SQLRepository) upsertOrder(ctx context.Context, q sqlx.ExtContext, roomID string, order model.OrderDraft) error {
	b, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	return r.exec(ctx, q, "upsert_order", queryUpsertOrder, map[string]any{
		"room_id":    roomID,
		"order_id":   order.OrderID,
		"status":     order.Status.String(),
		"data":       string(b),
		"updated_at": unixSeconds(r.now()),
	})
}

func (r *SQLRepository) GetOrder(ctx context.Context, roomID string) (model.OrderDraft, error) {
	var o model.OrderDraft
	err := r.getBlob(ctx, r.db, "get_order", queryGetOrder, roomID, &o)
	return o, err
}

// ConfirmOrder promotes the stored draft inside one transaction.
func (r *SQLRepository) ConfirmOrder(ctx context.Context, roomID, orderID string, at time.Time) (model.OrderDraft, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.OrderDraft{}, errx.WrapDB(err)
	}
	defer func() { _ = tx.Rollback() }()

	var draft model.OrderDraft
	if err := r.getBlob(ctx, tx, "get_order", queryGetOrder, roomID, &draft); err != nil {
		return model.OrderDraft{}, err
	}
	confirmed, err := draft.Confirm(orderID, at)
	if err != nil {
		return draft, err
	}
	if err := r.upsertOrder(ctx, tx, roomID, confirmed); err != nil {
		return draft, err
	}
	if err := tx.Commit(); err != nil {
		return draft, errx.WrapDB(err)
	}
	logx.Info().Str("room_id", roomID).Str("order_id", orderID).Msg("order confirmed")
	return confirmed, nil
}

// ================ Sentiment ================

func (r *SQLRepository) AppendScore(ctx context.Context, roomID string, score model.SentimentScore) error {
	b, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	return r.exec(ctx, r.db, "append_score", queryInsertScore, map[string]any{
		"room_id":     roomID,
		"label":       score.Label.String(),
		"polarity":    score.Polarity,
		"confidence":  score.Confidence,
		"data":        string(b),
		"recorded_at": unixSeconds(score.Timestamp),
	})
}

func (r *SQLRepository) ListScores(ctx context.Context, roomID string) (scores []model.SentimentScore, err error) {
	defer func() { r.metrics.RecordStore("sql", "list_scores", err) }()

	stmt, args, err := named(r.db, queryListScores, roomArgs(roomID))
	if err != nil {
		return nil, err
	}
	var rows []blobRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		logx.Error().Err(err).Str("room_id", roomID).Msg("failed to list sentiment records")
		return nil, errx.WrapDB(err)
	}

	scores = make([]model.SentimentScore, len(rows))
	for i, row := range rows {
		if err := json.Unmarshal([]byte(row.Data), &scores[i]); err != nil {
			return nil, fmt.Errorf("unmarshal score %d: %w", i, err)
		}
	}
	return scores, nil
}

// ================ Summaries ================

func (r *SQLRepository) UpsertSummary(ctx context.Context, summary model.CallSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return r.exec(ctx, r.db, "upsert_summary", queryUpsertSummary, map[string]any{
		"room_id":      summary.RoomID,
		"summary_id":   summary.SummaryID,
		"outcome":      summary.Outcome.String(),
		"data":         string(b),
		"generated_at": unixSeconds(summary.GeneratedAt),
	})
}

func (r *SQLRepository) GetSummary(ctx context.Context, roomID string) (model.CallSummary, error) {
	var s model.CallSummary
	err := r.getBlob(ctx, r.db, "get_summary", queryGetSummary, roomID, &s)
	return s, err
}

func unixSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / 1e9
}

var (
	_ model.TranscriptRepository = (*SQLRepository)(nil)
	_ model.OrderRepository      = (*SQLRepository)(nil)
	_ model.SentimentRepository  = (*SQLRepository)(nil)
	_ model.SummaryRepository    = (*SQLRepository)(nil)
)
