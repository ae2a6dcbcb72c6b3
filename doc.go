// Package cgt computes UK capital gains on shares and fund units, following
// the HMRC share matching rules.
//
// The rules apply security by security:
//   - Exchange: a sale noted as an "exchange" (share reorganisation) is
//     matched against every share bought before it.
//   - Same day and 30 days: a sale is matched against purchases made on the
//     same day, then against purchases made in the 30 following days, in date
//     order. The resulting disposals are BedAndBreakfast records.
//   - Section 104 pool: every remaining sale is matched against the pool of
//     all the shares still held, at their average cost.
//
// [Resolver] applies these rules to the transactions of a security and
// returns its event log: each transaction as pooled, with a snapshot of the
// [Pool] right after it. [Security] and [Account] keep transactions and event
// logs together, and produce the capital gains and dividends reports.
//
// Transactions are read from a JSONL ledger ([DecodeAccount]) or imported
// from statements exported by other tools ([ImportCSV], [ImportJSON]).
//
// This package serves as the foundational logic for the `cgt` command-line
// tool.
package cgt
