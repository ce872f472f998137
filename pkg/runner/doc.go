// Package runner executes blueprints in batch mode.
//
// A run checks every eligible processor of one blueprint sequentially, in
// declaration order. Processors that are disabled, excluded from batch or
// without a runnable check are skipped. With FixFailures the runner tries
// a fix and a second check on every fixable failure, mirroring what an
// artist would do by hand.
//
// The report folds each processor's feedback containers into one status
// and the whole run into a worst status, so a farm job can gate on a
// single value. Non-blocking processors still appear in the report but
// never affect the worst status. A cancelled context aborts the run after
// the current processor and surfaces the partial report.
package runner
