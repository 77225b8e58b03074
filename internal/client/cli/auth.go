package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username and password and opens a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		return a.fail(ctx, "login unsuccessful", err)
	}

	a.userName = userName
	fmt.Fprintf(a.out, "Logged in as %s\n", labelOr(user.Label(), userName))
	return nil
}

// Logout forgets the session and the cached data of the user.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.userName = ""
	if err != nil {
		return a.fail(ctx, "logout", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func labelOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
