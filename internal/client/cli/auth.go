package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/idkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, email and password and creates an account.
// It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	account, err := a.client.Register(ctx, userName, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s). You can log in now.\n", account.GetUsername(), account.GetId())
	return nil
}

// Login prompts for email and password, keeps the session token and loads
// the profile for the prompt.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		return err
	}

	account, err := a.client.WhoAmI(ctx)
	if err != nil {
		return err
	}
	a.account = account

	fmt.Fprintf(a.out, "Welcome, %s!\n", account.GetUsername())
	return nil
}

// Logout drops the session token and the cached profile.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.account = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
