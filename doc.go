// Package costbasis computes the cost basis of a bitcoin holding from its
// transaction history. It is deterministic, auditable and stateless: every
// calculation replays the whole history into a private ledger of lots.
//
// The core functionalities include:
//   - Normalization: exchange rows of the unified schema (buy, sell, deposit,
//     withdrawal, interest) and of the legacy one (Buy, Sell, Send, Receive)
//     become a single stream of Acquire, Dispose and Neutral events.
//   - Lot matching: disposals consume open lots under FIFO, LIFO, HIFO or
//     Average Cost, with realized gains split by holding period.
//   - Valuation: unrealized gains and a flat-rate estimate of the potential
//     tax liability at the current spot price.
//   - Aggregation: monthly portfolio series with moving averages, yearly
//     activity, performance and holding age distribution.
//
// Row level problems never abort a calculation; they are returned as
// Diagnostics next to the figures. The package serves as the foundational
// logic of the `btcb` command-line tool.
package costbasis
