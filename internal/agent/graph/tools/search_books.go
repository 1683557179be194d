package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

const (
	ToolSearchBooks = "search_books"

	DefaultMaxResults = 3
	MaxResults        = 10
)

type SearchBooksInput struct {
	Query      string `json:"query,omitempty"`
	Genre      string `json:"genre,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchBooksOutput struct {
	Books []model.Book `json:"books"`
	Total int          `json:"total"`
}

// NewSearchBooksTool searches catalog. Only in-stock books are returned,
// best rated first; an empty query with no genre lists the best rated books.
func NewSearchBooksTool(catalog []model.Book) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchBooks,
			Desc: "Search the bookstore catalog for in-stock books to recommend. Matches title, author, genre and summary. Returns at most max_results books, best rated first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type: "string",
					Desc: "Keywords such as a title, an author or a theme, e.g. 'detective', 'Agatha Christie'.",
				},
				"genre": {
					Type: "string",
					Desc: "Optional genre filter, e.g. mystery, fantasy, biography, self-help.",
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of books to return (default: 3, max: 10)",
				},
			}),
		},
		func(ctx context.Context, in *SearchBooksInput) (*SearchBooksOutput, error) {
			return Search(catalog, *in), nil
		},
	)
}

// Search is the tool body without the tool plumbing.
func Search(catalog []model.Book, in SearchBooksInput) *SearchBooksOutput {
	limit := in.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if limit > MaxResults {
		limit = MaxResults
	}
	query := lexicon.Normalize(strings.TrimSpace(in.Query))
	genre := lexicon.Normalize(strings.TrimSpace(in.Genre))

	matched := []model.Book{}
	for _, b := range catalog {
		if !b.InStock {
			continue
		}
		if genre != "" && lexicon.Normalize(b.Genre) != genre {
			continue
		}
		if query != "" && !matches(b, query) {
			continue
		}
		matched = append(matched, b)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })

	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return &SearchBooksOutput{Books: matched, Total: total}
}

func matches(b model.Book, query string) bool {
	for _, field := range []string{b.Title, b.Author, b.Genre, b.Summary} {
		if strings.Contains(lexicon.Normalize(field), query) {
			return true
		}
	}
	return false
}

// GetQueryTools returns the tools available to the turn graph.
func GetQueryTools(catalog []model.Book) []tool.BaseTool {
	return []tool.BaseTool{NewSearchBooksTool(catalog)}
}

// GetToolInfos collects the ToolInfo of every tool.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
