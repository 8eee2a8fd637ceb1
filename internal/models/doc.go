// Package models defines the core domain models for the expense tracker.
//
// # Models
//
//   - Member: a participant in the shared expense pool
//   - Expense: a single payment made by one member, divided among members
//   - Split: one member's allocated share of one expense
//   - Balance: derived per-member totals (never stored)
//   - Transfer: a suggested settlement payment (never stored)
//   - ShareSpec: how an expense should be divided (tagged variant)
//
// # Design Principles
//
// 1. **Names as identity**: members are identified by unique name strings;
// numeric ids exist only inside the storage layer.
// 2. **Derived data stays derived**: balances and transfers are computed on
// demand from expenses and splits, never persisted.
// 3. **Tagged variants over runtime inspection**: the three ways to divide an
// expense are an explicit enum, so resolution logic is exhaustive.
package models
