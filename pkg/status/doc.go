// Package status defines the severity model shared by every validation
// outcome.
//
// A Status pairs a display name and color with a numeric severity level
// and a kind. Fail statuses carry positive levels (higher is worse),
// success statuses carry negative levels (lower is better) and the
// built-in sentinels (Default, Skipped, Aborted, Exception) mark runtime
// conditions rather than check results. Statuses compare by level only,
// and the NaN-leveled sentinels never participate in ordering.
//
// The stock statuses cover most pipelines; a Registry lets a studio add
// its own severities without touching the defaults.
package status
