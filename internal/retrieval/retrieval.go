// Package retrieval runs ranked searches against a docindex-shaped bleve
// index: it builds a field-boosted query, retrieves more candidates than
// requested, re-ranks them with the composite scoring formula in score.go,
// and truncates to the caller's limit.
//
// Grounded on original_source/src/index/reader.rs's SearchEngine, translated
// from tantivy's QueryParser/TopDocs/Searcher trio to bleve/v2's
// query-string query and Index.Search.
package retrieval

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/drozosearch/drozosearch/internal/docindex"
)

// MatchType classifies why a result surfaced: a file-name match or a
// content-only match.
type MatchType int

const (
	MatchTypeFileName MatchType = iota
	MatchTypeContent
	// MatchTypeMetadata is reserved for results that match on a metadata
	// field (permissions, size) rather than name or content; the composite
	// query built here never produces one today, but the type is part of
	// the result shape a future metadata-only query mode would populate.
	MatchTypeMetadata
)

func (m MatchType) String() string {
	switch m {
	case MatchTypeFileName:
		return "file_name"
	case MatchTypeMetadata:
		return "metadata"
	default:
		return "content"
	}
}

// Result is a single ranked hit.
type Result struct {
	FileName        string
	FilePath        string
	MatchType       MatchType
	FileSize        uint64
	Modified        int64
	Score           float64
	ContentSnippet  string
	IsDir           bool
}

// maxRetrieve caps how many candidates are pulled from bleve before
// re-ranking, regardless of how large limit*3 grows.
const maxRetrieve = 600

// queryEscapeChars mirrors the character set original_source escapes before
// retrying a query the parser initially rejected.
const queryEscapeChars = `+-&|!(){}[]^"~*?:\/`

// Engine runs ranked searches against a bleve index built with
// docindex.BuildIndexMapping.
type Engine struct {
	index  bleve.Index
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine wraps index for searching.
func NewEngine(index bleve.Index) *Engine {
	return &Engine{
		index:  index,
		logger: slog.Default().With("component", "retrieval"),
		now:    time.Now,
	}
}

// Search runs queryStr against the index and returns up to limit results,
// sorted by composite score (highest first). An empty or whitespace-only
// query returns no results without touching the index, matching the
// original engine's short-circuit.
func (e *Engine) Search(queryStr string, limit int) ([]Result, error) {
	trimmed := strings.TrimSpace(queryStr)
	if trimmed == "" {
		return nil, nil
	}
	if limit <= 0 {
		return nil, nil
	}

	retrieveLimit := limit * 3
	if retrieveLimit > maxRetrieve {
		retrieveLimit = maxRetrieve
	}

	searchRes, err := e.runQuery(trimmed, retrieveLimit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	queryLower := strings.ToLower(trimmed)
	nowTS := e.now().Unix()

	results := make([]Result, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		result, ok := e.toResult(hit, queryLower, nowTS)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// runQuery attempts the boosted field query as-is; if bleve's query-string
// parser rejects it (e.g. unbalanced syntax characters in the raw query),
// it escapes those characters and retries once, mirroring original_source's
// parse-then-escape-then-reparse fallback.
func (e *Engine) runQuery(raw string, retrieveLimit int) (*bleve.SearchResult, error) {
	req := bleve.NewSearchRequest(buildQuery(raw))
	req.Size = retrieveLimit
	req.Fields = []string{
		docindex.FieldFileName,
		docindex.FieldFilePath,
		docindex.FieldFileSize,
		docindex.FieldModified,
		docindex.FieldIsDir,
	}

	res, err := e.index.Search(req)
	if err == nil {
		return res, nil
	}
	e.logger.Debug("query parse failed, retrying escaped", "query", raw, "error", err)

	escaped := escapeQuery(raw)
	req = bleve.NewSearchRequest(buildQuery(escaped))
	req.Size = retrieveLimit
	req.Fields = []string{
		docindex.FieldFileName,
		docindex.FieldFilePath,
		docindex.FieldFileSize,
		docindex.FieldModified,
		docindex.FieldIsDir,
	}
	return e.index.Search(req)
}

// buildQuery boosts file_name and extension over content, matching the
// weights original_source's QueryParser assigns: file_name at 3.0,
// extension at 1.5, content unboosted.
func buildQuery(raw string) *bleve.QueryStringQuery {
	qs := fmt.Sprintf("%s:(%s)^3.0 %s:(%s)^1.5 %s:(%s)",
		docindex.FieldFileName, raw,
		docindex.FieldExtension, raw,
		docindex.FieldContent, raw,
	)
	return bleve.NewQueryStringQuery(qs)
}

func escapeQuery(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if strings.ContainsRune(queryEscapeChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (e *Engine) toResult(hit *bleve.DocumentMatch, queryLower string, nowTS int64) (Result, bool) {
	fileName, ok := hit.Fields[docindex.FieldFileName].(string)
	if !ok {
		return Result{}, false
	}
	filePath, ok := hit.Fields[docindex.FieldFilePath].(string)
	if !ok {
		return Result{}, false
	}
	fileSize, ok := numericField(hit.Fields[docindex.FieldFileSize])
	if !ok {
		return Result{}, false
	}
	modified, ok := numericField(hit.Fields[docindex.FieldModified])
	if !ok {
		return Result{}, false
	}
	isDirNum, _ := numericField(hit.Fields[docindex.FieldIsDir])
	isDir := isDirNum != 0
	if v, ok := hit.Fields[docindex.FieldIsDir].(bool); ok {
		isDir = v
	}

	fileNameLower := strings.ToLower(fileName)
	matchType := MatchTypeContent
	if strings.Contains(fileNameLower, queryLower) {
		matchType = MatchTypeFileName
	}

	score := computeRank(hit.Score, queryLower, fileNameLower, filePath, int64(modified), isDir, nowTS)

	return Result{
		FileName:  fileName,
		FilePath:  filePath,
		MatchType: matchType,
		FileSize:  uint64(fileSize),
		Modified:  int64(modified),
		Score:     score,
		IsDir:     isDir,
	}, true
}

// numericField normalizes bleve's returned-field numeric representation,
// which is always float64 regardless of the original Go field type.
func numericField(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
