//go:build !poolcheck

package pool

// Release builds tolerate ownership violations silently for performance;
// they still show up in Stats.
const checksDefault = false
