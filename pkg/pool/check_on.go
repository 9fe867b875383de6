//go:build poolcheck

package pool

// Building with -tags poolcheck turns ownership checking on by default for
// every pool, matching checked/debug builds of the original system.
const checksDefault = true
