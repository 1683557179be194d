package parsers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

const (
	RecordDelimiter     = "##"
	TupleDelimiter      = "<||>"
	CompletionDelimiter = "<|COMPLETE|>"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 32 * 1024 // 32KB
	maxRecords    = 50
	maxTupleLen   = 2 * 1024
	maxMetaLen    = 1024
	maxPhraseLen  = 80
	maxPhrases    = 10
	maxErrSnippet = 200
)

// Emotions is the closed set of emotion names a judgement may carry.
var Emotions = []string{"joy", "trust", "fear", "surprise", "sadness", "disgust", "anger", "anticipation"}

type rawTuple struct {
	Type  string
	Parts []string
}

func parseRawTuple(s string) (*rawTuple, error) {
	if s == "" {
		return nil, fmt.Errorf("empty tuple")
	}
	if len(s) > maxTupleLen {
		return nil, fmt.Errorf("tuple too large")
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("invalid tuple parens")
	}
	inner := s[1 : len(s)-1]
	// at most 5 segments so metadata can contain delimiters
	parts := strings.SplitN(inner, TupleDelimiter, 5)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid tuple parts")
	}
	typ := strings.ToLower(strings.Trim(strings.TrimSpace(parts[0]), `"'`))
	return &rawTuple{Type: typ, Parts: parts}, nil
}

func parseFloatInRange(s, name string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s invalid number", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s out of range", name)
	}
	return v, nil
}

func parseMeta(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return map[string]any{}, nil
	}
	if len(s) > maxMetaLen {
		return nil, fmt.Errorf("metadata too large")
	}
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("metadata not json object")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func field(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// ParseJudgement reads the delimited records of a sentiment or emotion model:
//
//	(sentiment<||>positive<||>0.6<||>0.8<||>{"subjectivity":0.4})##
//	(emotion<||>joy<||>0.7)##
//	(phrase<||>sounds great)##
//	<|COMPLETE|>
//
// Broken records are skipped and listed under ParsingMetadata["parsing_errors"].
// Only a recovered panic produces an error.
func ParseJudgement(content string) (j *model.SentimentJudgement, err error) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "judgement_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("judgement parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			j = nil
		}
	}()

	truncated := false
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "judgement_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
		truncated = true
	}
	if idx := strings.Index(content, CompletionDelimiter); idx >= 0 {
		content = content[:idx]
	}

	j = &model.SentimentJudgement{
		Label:           model.Neutral,
		KeyPhrases:      []string{},
		Emotions:        map[string]float64{},
		ParsingMetadata: map[string]any{},
	}
	addErr := func(msg string) {
		v, _ := j.ParsingMetadata["parsing_errors"].([]string)
		j.ParsingMetadata["parsing_errors"] = append(v, msg)
	}
	if truncated {
		j.ParsingMetadata["truncated"] = true
	}

	processed := 0
	for _, rec := range strings.Split(content, RecordDelimiter) {
		if processed >= maxRecords {
			j.ParsingMetadata["records_capped"] = true
			break
		}
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		processed++

		rt, rerr := parseRawTuple(rec)
		if rerr != nil {
			addErr(fmt.Sprintf("bad_record: %s", safeSnippet(rec)))
			continue
		}

		switch rt.Type {
		case "sentiment":
			if j.HasSentiment {
				addErr("sentiment: duplicate record")
				continue
			}
			if len(rt.Parts) < 4 {
				addErr("sentiment: insufficient parts")
				continue
			}
			label, lerr := model.ParseSentimentLabel(strings.ToLower(field(rt.Parts[1])))
			if lerr != nil {
				addErr("sentiment: invalid label")
				continue
			}
			polarity, perr := parseFloatInRange(rt.Parts[2], "sent.polarity", -1, 1)
			if perr != nil {
				addErr("sentiment: invalid polarity")
				continue
			}
			conf, cerr := parseFloatInRange(rt.Parts[3], "sent.confidence", 0, 1)
			if cerr != nil {
				addErr("sentiment: invalid confidence")
				continue
			}
			if len(rt.Parts) >= 5 {
				if m, merr := parseMeta(rt.Parts[4]); merr == nil {
					j.Subjectivity = subjectivityOf(m)
				} else {
					addErr("sentiment: invalid metadata json")
				}
			}
			j.HasSentiment = true
			j.Label, j.Polarity, j.Confidence = label, polarity, conf

		case "emotion":
			if len(rt.Parts) < 3 {
				addErr("emotion: insufficient parts")
				continue
			}
			name := strings.ToLower(field(rt.Parts[1]))
			if !isEmotion(name) {
				addErr("emotion: unknown name")
				continue
			}
			score, serr := parseFloatInRange(rt.Parts[2], "emotion.score", 0, 1)
			if serr != nil {
				addErr("emotion: invalid score")
				continue
			}
			j.Emotions[name] = score

		case "phrase":
			phrase := field(rt.Parts[1])
			if phrase == "" || !utf8.ValidString(phrase) || utf8.RuneCountInString(phrase) > maxPhraseLen {
				addErr("phrase: invalid text")
				continue
			}
			if len(j.KeyPhrases) < maxPhrases {
				j.KeyPhrases = append(j.KeyPhrases, strings.ToLower(phrase))
			}

		default:
			addErr("unknown tuple type")
		}
	}
	return j, nil
}

func subjectivityOf(m map[string]any) *float64 {
	v, ok := m["subjectivity"].(float64)
	if !ok || v < 0 || v > 1 || math.IsNaN(v) {
		return nil
	}
	return &v
}

func isEmotion(name string) bool {
	for _, e := range Emotions {
		if e == name {
			return true
		}
	}
	return false
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
