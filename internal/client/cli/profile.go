package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
)

func (a *App) printAccount(acc *pb.Account) {
	fmt.Fprintf(a.out, "ID:       %s\nUsername: %s\nEmail:    %s\n", acc.GetId(), acc.GetUsername(), acc.GetEmail())
}

// WhoAmI shows the profile of the logged-in account as the server sees it.
func (a *App) WhoAmI(ctx context.Context) error {
	account, err := a.client.WhoAmI(ctx)
	if err != nil {
		return err
	}
	a.account = account
	a.printAccount(account)
	return nil
}

// Update edits username and email of the logged-in account. Empty answers
// keep the current value.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() || a.account == nil {
		return client.ErrNotLoggedIn
	}

	userName, err := GetTextOrDefault(a.reader, "New username", a.account.GetUsername(), a.out)
	if err != nil {
		return err
	}

	email, err := GetTextOrDefault(a.reader, "New email", a.account.GetEmail(), a.out)
	if err != nil {
		return err
	}

	account, err := a.client.UpdateProfile(ctx, a.account.GetId(), userName, email)
	if err != nil {
		return err
	}
	a.account = account

	fmt.Fprintln(a.out, "Profile updated")
	a.printAccount(account)
	return nil
}

// List prints every account ordered by username.
func (a *App) List(ctx context.Context) error {
	accounts, err := a.client.ListAccounts(ctx)
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No accounts")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tEMAIL\tID")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", acc.GetUsername(), acc.GetEmail(), acc.GetId())
	}
	return tw.Flush()
}
