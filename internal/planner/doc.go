// Package planner implements the budget allocation engine: a single-pass
// greedy allocator over candidates ranked by a pluggable scoring strategy.
//
// The pipeline is aggregate -> score -> allocate -> assemble. Two scoring
// strategies exist behind the Scorer interface: SimpleScorer ranks by
// expected CPA/CVR from direct history, SmartScorer adds the tiered
// fallback chain (history, topic similarity, demographics, embedding
// similarity) for creators with sparse data.
//
// The engine is a pure in-memory computation. It never queries a
// database or issues network calls; the caller loads creator snapshots
// and similarity links up front and passes them in read-only. One
// request produces one plan deterministically: identical inputs yield
// byte-identical output.
package planner
