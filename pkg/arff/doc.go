// Package arff loads relations stored in the Attribute-Relation File Format.
//
// An ARFF file has a header naming the relation and declaring its typed
// attributes, followed by a data section with one row per line:
//
//	% comments start with a percent sign
//	@relation weather
//	@attribute temperature numeric
//	@attribute outlook {sunny, overcast, rainy}
//	@data
//	21.5, sunny
//	?, rainy
//
// Numeric, integer and real attributes load as dataset.Numeric; brace
// lists load as *dataset.Nominal. Date, string and relational attributes
// are rejected. The `?` token marks a missing value.
//
// # Streaming and Batching
//
// A Stream parses one data line per pull and can be consumed once:
//
//	ds, err := arff.Load(ctx, "weather.arff", false)
//	for row, err := range ds.Rows(ctx) {
//		...
//	}
//
// A Batch drains a stream at load time and offers indexed, repeatable
// access to its rows and columns:
//
//	ds, err := arff.Load(ctx, "weather.arff", true)
//	batch := ds.(*arff.Batch)
//	labels, valid, err := arff.Column(batch, rep)
//
// Loading is all-or-nothing: a malformed header or data line fails the
// whole load with an *errors.Error whose Details carry the offending line
// and its number.
//
// Streams are not safe for concurrent use. A Batch is read-only once built
// and may be shared between goroutines.
package arff
