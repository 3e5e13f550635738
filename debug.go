package showcase

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set App debug flag so that node
// operations (which lack an App pointer) can check it cheaply.
var globalDebug bool

// debugStats holds per-frame timing metrics.
// Only populated when App.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	drawCalls  int
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[showcase] "+format+"\n", args...)
}

// debugLog prints timing and draw-call stats to stderr.
func debugLog(stats debugStats) {
	debugf("update: %v | draw: %v | draw calls: %d",
		stats.updateTime, stats.drawTime, stats.drawCalls)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("showcase debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
