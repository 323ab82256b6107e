// File: utils/constants.go
package utils

import "time"

// RouterStateTTL is the time-to-live for router stickiness entries.
const RouterStateTTL = 24 * time.Hour

// SummaryTTL is the time-to-live for accumulated conversation summaries.
const SummaryTTL = 48 * time.Hour
