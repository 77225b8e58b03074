package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/roomadmin/internal/client/services"
)

// consoleNotifier prints service notifications. Sync workers may notify
// concurrently, so writes are serialized.
type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ services.Notifier = (*consoleNotifier)(nil)

func newConsoleNotifier(w io.Writer) *consoleNotifier {
	return &consoleNotifier{w: w}
}

func (n *consoleNotifier) print(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", level, msg)
}

func (n *consoleNotifier) Success(msg string) { n.print("[ok]", msg) }
func (n *consoleNotifier) Warning(msg string) { n.print("[warn]", msg) }
func (n *consoleNotifier) Error(msg string)   { n.print("[error]", msg) }
