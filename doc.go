// Package positions turns a flat list of purchase lots into a position table.
//
// The core functionalities include:
//   - Aggregation: one row per symbol, with price and percentage columns
//     averaged across lots and quantities, gains and values summed.
//   - Filtering: a case-insensitive substring match on the symbol, applied
//     the same way to the aggregated rows and to the lots feeding the totals.
//   - Totals: invested capital, gains and value summed over the filtered lots,
//     with a total gain percentage weighted by invested capital.
//   - Expansion: an explicit set of symbols whose lots are shown under their row.
//
// Around this core, the package values holdings with quotes (NewLot), computes
// allocation and headline statistics, validates order tickets, and reads lots
// from a JSONL file or a remote portfolio service (Source).
//
// All amounts are exact decimals. Rounding to cents happens once, when a
// derived figure is produced.
package positions
