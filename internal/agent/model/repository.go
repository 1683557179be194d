package model

import (
	"context"
	"time"
)

// TranscriptRepository appends and reads the utterances of a room in timestamp order.
type TranscriptRepository interface {
	AppendEntry(ctx context.Context, roomID string, entry TranscriptEntry) error
	ListEntries(ctx context.Context, roomID string) ([]TranscriptEntry, error)
	CountEntries(ctx context.Context, roomID string) (int, error)
	ClearEntries(ctx context.Context, roomID string) error
}

// OrderRepository keeps one order per room.
type OrderRepository interface {
	UpsertOrder(ctx context.Context, roomID string, order OrderDraft) error
	// GetOrder returns a 404 errx.AppError when the room has no order.
	GetOrder(ctx context.Context, roomID string) (OrderDraft, error)
	ConfirmOrder(ctx context.Context, roomID, orderID string, at time.Time) (OrderDraft, error)
}

// SentimentRepository is the durable, uncapped score log.
type SentimentRepository interface {
	AppendScore(ctx context.Context, roomID string, score SentimentScore) error
	ListScores(ctx context.Context, roomID string) ([]SentimentScore, error)
}

// SummaryRepository keeps one CallSummary per room; upserts overwrite.
type SummaryRepository interface {
	UpsertSummary(ctx context.Context, summary CallSummary) error
	// GetSummary returns a 404 errx.AppError when the room has no summary.
	GetSummary(ctx context.Context, roomID string) (CallSummary, error)
}
