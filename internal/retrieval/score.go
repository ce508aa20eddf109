package retrieval

import (
	"math"
	"strings"
)

// computeRank blends BM25 relevance with file-name and filesystem signals
// into the single composite score drozosearch sorts results by.
//
// Byte-for-byte port of original_source/src/index/reader.rs's compute_rank:
// the weights (2.0 / 5.0 / 2.0 / 1.5 / 0.8 / 0.4) and every sub-formula are
// intentionally unchanged so ranking behavior matches the system this was
// distilled from.
func computeRank(bm25 float64, queryLower, fileNameLower, filePath string, modifiedTS int64, isDir bool, nowTS int64) float64 {
	bm25Norm := bm25 / (bm25 + 10.0)

	exactBonus := 0.0
	if fileNameLower == queryLower {
		exactBonus = 1.0
	} else {
		stem := fileNameLower
		if idx := strings.LastIndex(fileNameLower, "."); idx >= 0 {
			stem = fileNameLower[:idx]
		}
		if stem == queryLower {
			exactBonus = 0.8
		}
	}

	startsWithBonus := 0.0
	if exactBonus == 0.0 && strings.HasPrefix(fileNameLower, queryLower) {
		startsWithBonus = 0.5
	}

	containsBonus := 0.0
	if exactBonus == 0.0 && startsWithBonus == 0.0 && strings.Contains(fileNameLower, queryLower) {
		containsBonus = 0.3
	}

	ageSeconds := float64(nowTS - modifiedTS)
	if ageSeconds < 1 {
		ageSeconds = 1
	}
	ageHours := ageSeconds / 3600.0
	lnTerm := math.Log(ageHours / 24.0)
	if lnTerm < 0 {
		lnTerm = 0
	}
	recency := 1.0 / (1.0 + lnTerm)

	depth := float64(pathDepth(filePath))
	depthExcess := depth - 3.0
	if depthExcess < 0 {
		depthExcess = 0
	}
	depthPenalty := 1.0 / (1.0 + depthExcess*0.08)

	typeBonus := 0.0
	if !isDir {
		typeBonus = 0.1
	}

	return bm25Norm*2.0 +
		exactBonus*5.0 +
		startsWithBonus*2.0 +
		containsBonus*1.5 +
		recency*0.8 +
		depthPenalty*0.4 +
		typeBonus
}

// pathDepth counts path components the way Rust's std::path::Path::components
// does: a leading root separator counts as one component, and every
// non-empty segment after it counts as another.
func pathDepth(path string) int {
	depth := 0
	if strings.HasPrefix(path, "/") {
		depth++
	}
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
