package telemetry

import (
	"fmt"
	"io"
	"time"
)

// slowThreshold marks operations worth highlighting in styled output.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree renders the tree in a hierarchical layout:
//
//	read journal: 12ms
//	├─ parse main.journal: 9ms
//	│  └─ parse prices.journal: 2ms
//	└─ assemble journal: 1ms
func formatTimingTree(w io.Writer, root *timerNode, stylesAny any) {
	styles, _ := stylesAny.(Styler)

	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.end.Sub(root.start)))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles Styler) {
	duration := node.end.Sub(node.start)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	timing := formatDuration(duration)
	tree := prefix + branch
	if styles != nil {
		tree = styles.Dim(tree)
		if duration >= slowThreshold {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, node.name, timing)

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
