package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
)

// MemoryContextStore keeps contexts in process memory. Values are copied in
// and out so callers never share slices with the store.
type MemoryContextStore struct {
	mu   sync.RWMutex
	data map[string]model.ConversationContext
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{data: map[string]model.ConversationContext{}}
}

func (m *MemoryContextStore) Get(_ context.Context, roomID string) (model.ConversationContext, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.data[roomID]
	return cloneContext(c), ok, nil
}

func (m *MemoryContextStore) Put(_ context.Context, roomID string, c model.ConversationContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[roomID] = cloneContext(c)
	return nil
}

func (m *MemoryContextStore) Evict(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, roomID)
	return nil
}

func cloneContext(c model.ConversationContext) model.ConversationContext {
	c.TopicsDiscussed = append([]string(nil), c.TopicsDiscussed...)
	c.QuestionsAsked = append([]string(nil), c.QuestionsAsked...)
	c.CustomerResponses = append([]string(nil), c.CustomerResponses...)
	return c
}

// MemorySentimentHistory is a capped FIFO per room.
type MemorySentimentHistory struct {
	mu    sync.RWMutex
	limit int
	data  map[string][]model.SentimentScore
}

func NewMemorySentimentHistory(capacity int) *MemorySentimentHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &MemorySentimentHistory{limit: capacity, data: map[string][]model.SentimentScore{}}
}

func (m *MemorySentimentHistory) Record(_ context.Context, roomID string, score model.SentimentScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := append(m.data[roomID], score)
	if over := len(h) - m.limit; over > 0 {
		h = append([]model.SentimentScore(nil), h[over:]...)
	}
	m.data[roomID] = h
	return nil
}

func (m *MemorySentimentHistory) Scores(_ context.Context, roomID string) ([]model.SentimentScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SentimentScore{}, m.data[roomID]...), nil
}

func (m *MemorySentimentHistory) Evict(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, roomID)
	return nil
}

// MemoryRepository implements every durable repository in process memory.
// It backs tests and the single-process demo.
type MemoryRepository struct {
	mu          sync.RWMutex
	transcripts map[string][]model.TranscriptEntry
	orders      map[string]model.OrderDraft
	scores      map[string][]model.SentimentScore
	summaries   map[string]model.CallSummary
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		transcripts: map[string][]model.TranscriptEntry{},
		orders:      map[string]model.OrderDraft{},
		scores:      map[string][]model.SentimentScore{},
		summaries:   map[string]model.CallSummary{},
	}
}

func (m *MemoryRepository) AppendEntry(_ context.Context, roomID string, entry model.TranscriptEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[roomID] = append(m.transcripts[roomID], entry)
	return nil
}

func (m *MemoryRepository) ListEntries(_ context.Context, roomID string) ([]model.TranscriptEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]model.TranscriptEntry{}, m.transcripts[roomID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (m *MemoryRepository) CountEntries(_ context.Context, roomID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transcripts[roomID]), nil
}

func (m *MemoryRepository) ClearEntries(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transcripts, roomID)
	return nil
}

func (m *MemoryRepository) UpsertOrder(_ context.Context, roomID string, order model.OrderDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[roomID] = order
	return nil
}

func (m *MemoryRepository) GetOrder(_ context.Context, roomID string) (model.OrderDraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[roomID]
	if !ok {
		return o, errx.NotFound("order", roomID)
	}
	return o, nil
}

func (m *MemoryRepository) ConfirmOrder(_ context.Context, roomID, orderID string, at time.Time) (model.OrderDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[roomID]
	if !ok {
		return o, errx.NotFound("order", roomID)
	}
	confirmed, err := o.Confirm(orderID, at)
	if err != nil {
		return o, err
	}
	m.orders[roomID] = confirmed
	return confirmed, nil
}

func (m *MemoryRepository) AppendScore(_ context.Context, roomID string, score model.SentimentScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[roomID] = append(m.scores[roomID], score)
	return nil
}

func (m *MemoryRepository) ListScores(_ context.Context, roomID string) ([]model.SentimentScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SentimentScore{}, m.scores[roomID]...), nil
}

func (m *MemoryRepository) UpsertSummary(_ context.Context, summary model.CallSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[summary.RoomID] = summary
	return nil
}

func (m *MemoryRepository) GetSummary(_ context.Context, roomID string) (model.CallSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.summaries[roomID]
	if !ok {
		return s, errx.NotFound("summary", roomID)
	}
	return s, nil
}

var (
	_ model.ContextStore         = (*MemoryContextStore)(nil)
	_ model.SentimentHistory     = (*MemorySentimentHistory)(nil)
	_ model.TranscriptRepository = (*MemoryRepository)(nil)
	_ model.OrderRepository      = (*MemoryRepository)(nil)
	_ model.SentimentRepository  = (*MemoryRepository)(nil)
	_ model.SummaryRepository    = (*MemoryRepository)(nil)
)
