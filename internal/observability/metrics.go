package observability

import "expvar"

var (
	RequestsTotal = expvar.NewInt("requests_total")
	Responses2xx  = expvar.NewInt("responses_2xx")
	Responses4xx  = expvar.NewInt("responses_4xx")
	Responses5xx  = expvar.NewInt("responses_5xx")

	SearchesTotal   = expvar.NewInt("searches_total")
	SearchCacheHits = expvar.NewInt("search_cache_hits")
	InvalidPatterns = expvar.NewInt("search_invalid_patterns")
	Descriptions    = expvar.NewInt("descriptions_total")

	// Lexicon size after the last load, keyed by source id.
	SourceEntries = expvar.NewMap("source_entries")
	SourceSkipped = expvar.NewMap("source_skipped")
)

func recordStatus(code int) {
	RequestsTotal.Add(1)
	switch {
	case code >= 200 && code < 300:
		Responses2xx.Add(1)
	case code >= 400 && code < 500:
		Responses4xx.Add(1)
	case code >= 500:
		Responses5xx.Add(1)
	}
}

// RecordSource publishes the entry and skip counts of a loaded source.
func RecordSource(id string, entries, skipped int) {
	e := new(expvar.Int)
	e.Set(int64(entries))
	SourceEntries.Set(id, e)
	s := new(expvar.Int)
	s.Set(int64(skipped))
	SourceSkipped.Set(id, s)
}
