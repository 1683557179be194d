package main

import (
	"context"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/summary"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

var demoCall = []struct {
	role    model.Role
	message string
}{
	{model.RoleAssistant, "Hello, thanks for calling Springboard Books! How can I help you today?"},
	{model.RoleUser, "Hi, my name is Priya. I'm looking for a gift for my dad."},
	{model.RoleAssistant, "Lovely! What kind of books does he enjoy?"},
	{model.RoleUser, "He loves a good mystery novel, which author would you recommend?"},
	{model.RoleAssistant, "Agatha Christie is a classic. \"And Then There Were None\" is one of our best rated."},
	{model.RoleUser, "Hmm, that sounds great but is it expensive? I'm not sure about the price."},
	{model.RoleAssistant, "It's $15.99, and it's in stock today."},
	{model.RoleUser, "Perfect, I want 2 copies of \"And Then There Were None\". I'll pay by card, please deliver it to my home."},
	{model.RoleAssistant, "Wonderful, I'll get that order ready for you."},
	{model.RoleUser, "Thank you, that was really helpful!"},
}

// replayDemoCall feeds a scripted call through the turn graph, then runs the
// call-ended trigger.
func replayDemoCall(ctx context.Context, runner graph.Runner, handler *summary.CallEndHandler, svc *stage.Service, roomID string) (model.CallReport, error) {
	for i, t := range demoCall {
		out, err := runner.Invoke(ctx, model.TurnInput{
			RoomID:    roomID,
			Role:      t.role,
			Message:   t.message,
			Timestamp: float64(i * 12),
		})
		if err != nil {
			return model.CallReport{}, err
		}
		if out.Score == nil {
			continue
		}

		ev := logx.Info().
			Str("room_id", roomID).
			Str("sentiment", out.Score.Label.String()).
			Float64("polarity", out.Score.Polarity).
			Int("shifts", len(out.Shifts))
		if out.Context != nil {
			ev = ev.Str("stage", out.Context.Stage.String())
		}
		if out.Question != nil {
			ev = ev.Str("next_question", out.Question.Text)
		}
		if out.Objection != nil {
			ev = ev.Str("objection", out.Objection.Category.String())
		}
		if len(out.Recommendations) > 0 {
			ev = ev.Int("recommendations", len(out.Recommendations))
		}
		ev.Msg("customer turn")
	}

	report, err := handler.End(ctx, roomID, nil)
	if err != nil {
		return report, err
	}
	if err := svc.MarkFollowUp(ctx, roomID); err != nil {
		logx.Warn().Err(err).Str("room_id", roomID).Msg("failed to mark follow up")
	}
	return report, nil
}
