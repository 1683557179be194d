package model

// TurnState stores per-invocation state for the turn graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState.
//   - Read and written only inside Eino state handlers or compose.ProcessState,
//     which Eino serialises, so no mutex is needed.
//   - Persistence goes through the stores, never through this struct.
type TurnState struct {
	Input    TurnInput
	Recorded bool
	Score    *SentimentScore
	Shifts   []SentimentShift
	Recent   []TranscriptEntry
	Context  *ConversationContext
	Result   *TurnResult
}

// TurnInput is one utterance arriving on the "message arrived" trigger.
type TurnInput struct {
	RoomID    string  `json:"room_id"`
	Role      Role    `json:"role"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

// TurnResult is what the graph hands back to the caller for one utterance.
// Agent turns only carry RoomID and Recorded.
type TurnResult struct {
	RoomID          string               `json:"room_id"`
	Recorded        bool                 `json:"recorded"`
	Score           *SentimentScore      `json:"sentiment,omitempty"`
	Shifts          []SentimentShift     `json:"shifts,omitempty"`
	Context         *ConversationContext `json:"context,omitempty"`
	Question        *Question            `json:"next_question,omitempty"`
	Objection       *ObjectionResponse   `json:"objection_response,omitempty"`
	Recommendations []Book               `json:"recommendations,omitempty"`
}
