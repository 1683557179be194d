package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/conversations"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

const (
	NodeRecordTranscript      = "record_transcript"
	NodeSkipScoring           = "skip_scoring"
	NodeScoreSentiment        = "score_sentiment"
	NodeDetectShifts          = "detect_shifts"
	NodeUpdateContext         = "update_context"
	NodeNextQuestion          = "next_question"
	NodePlanRecommendations   = "plan_recommendations"
	NodeToolExecutor          = "tool_executor"
	NodeAttachRecommendations = "attach_recommendations"
)

// NewRecordTranscriptPreHandler seeds the local state with the turn input.
func NewRecordTranscriptPreHandler() func(context.Context, model.TurnInput, *model.TurnState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.TurnState) (model.TurnInput, error) {
		s.Input = in
		return in, nil
	}
}

// NewRecordTranscriptNode appends the utterance to the room transcript.
func NewRecordTranscriptNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (model.TurnInput, error) {
		recorded, err := mm.Record(ctx, in)
		if err != nil {
			logx.Error().Err(err).Str("room_id", in.RoomID).Msg("failed to record transcript entry")
			return in, err
		}
		err = compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			s.Recorded = recorded
			return nil
		})
		return in, err
	})
}

// NewScoringCondition routes recorded customer turns to scoring. Agent turns
// and blank messages end the run.
func NewScoringCondition() func(context.Context, model.TurnInput) (string, error) {
	return func(ctx context.Context, in model.TurnInput) (string, error) {
		var recorded bool
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			recorded = s.Recorded
			return nil
		}); err != nil {
			return "", err
		}
		if recorded && in.Role == model.RoleUser {
			return NodeScoreSentiment, nil
		}
		logx.Debug().Str("room_id", in.RoomID).Str("role", in.Role.String()).Bool("recorded", recorded).Msg("skipping sentiment scoring")
		return NodeSkipScoring, nil
	}
}

func NewSkipScoringNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (*model.TurnResult, error) {
		result := &model.TurnResult{RoomID: in.RoomID}
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			result.Recorded = s.Recorded
			return nil
		})
		return result, err
	})
}

// NewScoreSentimentNode scores the customer message. scores may be nil; when
// set, every score is also persisted for the call report, best effort.
func NewScoreSentimentNode(scorer *sentiment.Scorer, scores model.SentimentRepository) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (model.SentimentScore, error) {
		score := scorer.Score(ctx, in.RoomID, in.Message)
		if scores != nil {
			if err := scores.AppendScore(ctx, in.RoomID, score); err != nil {
				logx.Error().Err(err).Str("room_id", in.RoomID).Msg("failed to persist sentiment score")
			}
		}
		return score, nil
	})
}

func NewScoreSentimentPostHandler() func(context.Context, model.SentimentScore, *model.TurnState) (model.SentimentScore, error) {
	return func(ctx context.Context, out model.SentimentScore, s *model.TurnState) (model.SentimentScore, error) {
		score := out
		s.Score = &score
		logx.Debug().
			Str("room_id", s.Input.RoomID).
			Str("label", out.Label.String()).
			Float64("polarity", out.Polarity).
			Float64("confidence", out.Confidence).
			Msg("sentiment scored")
		return out, nil
	}
}

// NewDetectShiftsNode re-runs shift detection over the room history. A history
// read failure is logged and yields no shifts.
func NewDetectShiftsNode(scorer *sentiment.Scorer, m *metrics.Metrics) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, score model.SentimentScore) ([]model.SentimentShift, error) {
		roomID, err := stateRoomID(ctx)
		if err != nil {
			return nil, err
		}
		shifts, err := scorer.Shifts(ctx, roomID)
		if err != nil {
			logx.Warn().Err(err).Str("room_id", roomID).Msg("shift detection skipped")
			return []model.SentimentShift{}, nil
		}
		if n := countShiftsAt(shifts, score); n > 0 {
			m.RecordShifts(n)
			logx.Info().Str("room_id", roomID).Int("shifts", n).Msg("sentiment shift detected")
		}
		return shifts, nil
	})
}

func NewDetectShiftsPostHandler() func(context.Context, []model.SentimentShift, *model.TurnState) ([]model.SentimentShift, error) {
	return func(ctx context.Context, out []model.SentimentShift, s *model.TurnState) ([]model.SentimentShift, error) {
		s.Shifts = out
		return out, nil
	}
}

// NewUpdateContextNode folds the score and the recent transcript into the
// room's conversation context.
func NewUpdateContextNode(mm *conversations.MessagesManager, svc *stage.Service) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ []model.SentimentShift) (model.ConversationContext, error) {
		var (
			roomID string
			score  *model.SentimentScore
		)
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			roomID, score = s.Input.RoomID, s.Score
			return nil
		}); err != nil {
			return model.ConversationContext{}, err
		}

		recent, err := mm.Recent(ctx, roomID)
		if err != nil {
			return model.ConversationContext{}, fmt.Errorf("load recent turns: %w", err)
		}
		c, err := svc.Observe(ctx, roomID, recent, score)
		if err != nil {
			return c, fmt.Errorf("update conversation context: %w", err)
		}
		err = compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			s.Recent = recent
			return nil
		})
		return c, err
	})
}

func NewUpdateContextPostHandler() func(context.Context, model.ConversationContext, *model.TurnState) (model.ConversationContext, error) {
	return func(ctx context.Context, out model.ConversationContext, s *model.TurnState) (model.ConversationContext, error) {
		c := out
		s.Context = &c
		return out, nil
	}
}

// NewNextQuestionNode answers an objection when the room is in objection
// handling, then picks the next question and assembles the turn result.
func NewNextQuestionNode(svc *stage.Service) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, c model.ConversationContext) (*model.TurnResult, error) {
		var st model.TurnState
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			st = *s
			return nil
		}); err != nil {
			return nil, err
		}
		roomID := st.Input.RoomID

		result := &model.TurnResult{
			RoomID:   roomID,
			Recorded: st.Recorded,
			Score:    st.Score,
			Shifts:   st.Shifts,
		}
		if c.Stage == model.StageObjectionHandling {
			resp, err := svc.HandleObjection(ctx, roomID, st.Input.Message)
			if err != nil {
				return nil, fmt.Errorf("handle objection: %w", err)
			}
			result.Objection = &resp
			logx.Debug().Str("room_id", roomID).Str("category", resp.Category.String()).Msg("objection handled")
		}

		q, updated, err := svc.NextQuestion(ctx, roomID, st.Recent)
		if err != nil {
			return nil, fmt.Errorf("next question: %w", err)
		}
		result.Question = &q
		result.Context = &updated
		return result, nil
	})
}

func NewNextQuestionPostHandler() func(context.Context, *model.TurnResult, *model.TurnState) (*model.TurnResult, error) {
	return func(ctx context.Context, out *model.TurnResult, s *model.TurnState) (*model.TurnResult, error) {
		s.Result = out
		return out, nil
	}
}

func stateRoomID(ctx context.Context) (string, error) {
	var roomID string
	err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
		roomID = s.Input.RoomID
		return nil
	})
	return roomID, err
}
