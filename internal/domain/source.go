package domain

// Source priority for merge tie-breaks: ATS-native records carry the
// richest fields, job boards and email digests the weakest. Higher wins.
var sourceRank = map[string]int{
	"greenhouse": 9,
	"lever":      8,
	"ashby":      7,
	"otta":       6,
	"wellfound":  5,
	"wttj":       4,
	"linkedin":   3,
	"email":      2,
	"unknown":    1,
}

// SourcePriority ranks a source name; names outside the table rank as
// "unknown" rather than erroring, matching the lenient ingest boundary.
func SourcePriority(source string) int {
	if r, ok := sourceRank[source]; ok {
		return r
	}
	return sourceRank["unknown"]
}
