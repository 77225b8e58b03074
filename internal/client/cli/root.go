package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := a.userName
	if st := a.imageService.Status(); st != "" {
		if s != "" {
			s += " "
		}
		s += st
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

// Root restores the remembered user, asks for credentials when there is no
// session and blocks in the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to roomadmin (type 'help' for commands)")

	name, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.logger.Warn(ctx, "cannot read session", "error", err)
	}
	a.userName = name

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
