package graph

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/conversations"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/nodes"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/observers"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// roomLockStripes bounds the per-room lock table.
const roomLockStripes = 64

// Runner executes one "message arrived" trigger.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (*model.TurnResult, error)
}

// Config holds everything needed to compose the turn graph.
type Config struct {
	Transcripts model.TranscriptRepository
	Scorer      *sentiment.Scorer
	Stage       *stage.Service
	// Scores, when set, persists every score for the call report.
	Scores model.SentimentRepository
	// Catalog enables book recommendations in the presentation stage.
	Catalog      []model.Book
	Conversation model.ConversationConfig
	Metrics      *metrics.Metrics
}

// GraphBuilder handles the construction of the turn graph
type GraphBuilder struct {
	config *Config
	mm     *conversations.MessagesManager
	graph  *compose.Graph[model.TurnInput, *model.TurnResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.TurnResult]
	locks    [roomLockStripes]sync.Mutex
}

// Invoke runs the graph for one utterance. Turns of the same room are
// serialised; the stores do not merge concurrent updates.
func (r *graphRunner) Invoke(ctx context.Context, in model.TurnInput) (*model.TurnResult, error) {
	in.RoomID = strings.TrimSpace(in.RoomID)
	if in.RoomID == "" {
		return nil, errx.Invalid("room id is blank")
	}

	mu := r.lockFor(in.RoomID)
	mu.Lock()
	defer mu.Unlock()

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().Err(err).Str("room_id", in.RoomID).Msg("turn graph failed")
		return nil, err
	}
	return out, nil
}

func (r *graphRunner) lockFor(roomID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(roomID))
	return &r.locks[h.Sum32()%roomLockStripes]
}

// BuildTurnGraph validates cfg, builds the graph and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	runnable, err := BuildGraph(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	logx.Debug().Bool("recommendations", len(cfg.Catalog) > 0).Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled turn graph
func BuildGraph(ctx context.Context, config *Config) (compose.Runnable[model.TurnInput, *model.TurnResult], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Transcripts == nil {
		return nil, fmt.Errorf("transcript repository is nil")
	}
	if config.Scorer == nil || config.Stage == nil {
		return nil, fmt.Errorf("scorer and stage service are required")
	}

	builder := &GraphBuilder{
		config: config,
		mm:     conversations.NewMessagesManager(config.Transcripts, config.Conversation),
		graph: compose.NewGraph[model.TurnInput, *model.TurnResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
				return &model.TurnState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()
	if err := builder.addBranches(); err != nil {
		return nil, err
	}
	if err := builder.setupRecommendations(ctx); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds the scoring and stage nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeRecordTranscript,
		nodes.NewRecordTranscriptNode(b.mm),
		compose.WithStatePreHandler(nodes.NewRecordTranscriptPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeSkipScoring, nodes.NewSkipScoringNode())

	b.graph.AddLambdaNode(nodes.NodeScoreSentiment,
		nodes.NewScoreSentimentNode(b.config.Scorer, b.config.Scores),
		compose.WithStatePostHandler(nodes.NewScoreSentimentPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeDetectShifts,
		nodes.NewDetectShiftsNode(b.config.Scorer, b.config.Metrics),
		compose.WithStatePostHandler(nodes.NewDetectShiftsPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeUpdateContext,
		nodes.NewUpdateContextNode(b.mm, b.config.Stage),
		compose.WithStatePostHandler(nodes.NewUpdateContextPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeNextQuestion,
		nodes.NewNextQuestionNode(b.config.Stage),
		compose.WithStatePostHandler(nodes.NewNextQuestionPostHandler()),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeRecordTranscript},
		{nodes.NodeSkipScoring, compose.END},
		{nodes.NodeScoreSentiment, nodes.NodeDetectShifts},
		{nodes.NodeDetectShifts, nodes.NodeUpdateContext},
		{nodes.NodeUpdateContext, nodes.NodeNextQuestion},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	scoringBranch := compose.NewGraphBranch(
		nodes.NewScoringCondition(),
		map[string]bool{
			nodes.NodeScoreSentiment: true,
			nodes.NodeSkipScoring:    true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeRecordTranscript, scoringBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding scoring branch")
		return fmt.Errorf("error adding scoring branch: %w", err)
	}
	return nil
}

// setupRecommendations wires the catalog search behind the presentation stage.
// Without a catalog the question node ends the run.
func (b *GraphBuilder) setupRecommendations(ctx context.Context) error {
	if len(b.config.Catalog) == 0 {
		b.graph.AddEdge(nodes.NodeNextQuestion, compose.END)
		return nil
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:                tools.GetQueryTools(b.config.Catalog),
		ExecuteSequentially:  true,
		UnknownToolsHandler:  nodes.NewUnknownToolsHandler(),
		ToolArgumentsHandler: nodes.NewToolArgumentsHandler(),
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	b.graph.AddLambdaNode(nodes.NodePlanRecommendations, nodes.NewPlanRecommendationsNode())
	b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode)
	b.graph.AddLambdaNode(nodes.NodeAttachRecommendations, nodes.NewAttachRecommendationsNode())

	b.graph.AddEdge(nodes.NodePlanRecommendations, nodes.NodeToolExecutor)
	b.graph.AddEdge(nodes.NodeToolExecutor, nodes.NodeAttachRecommendations)
	b.graph.AddEdge(nodes.NodeAttachRecommendations, compose.END)

	recommendBranch := compose.NewGraphBranch(
		nodes.NewRecommendCondition(),
		map[string]bool{
			nodes.NodePlanRecommendations: true,
			compose.END:                   true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeNextQuestion, recommendBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding recommendation branch")
		return fmt.Errorf("error adding recommendation branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *model.TurnResult], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
