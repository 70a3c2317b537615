// Package recurrence models the repeat schedule of a payment.
//
// A payment repeats either every N weeks on the weekday of its start date, or
// monthly on a set of days of the month, optionally restricted to some months of
// the year. Everything here is pure computation over a Recurrence value:
//   - Describe turns a schedule into a sentence plus advisory warnings
//   - Reduce applies form edits (Action values) while keeping the start date's
//     day and month inside the selections
//   - Normalize repairs a schedule before it is stored
//   - Occurrences lists the dates a schedule falls on inside a window
package recurrence
