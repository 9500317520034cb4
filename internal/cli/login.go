package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) loginCmd(ctx context.Context) {
	userID, err := GetSimpleText(a.reader, "Remote user id", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	token, err := GetSecret("Access token", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if err := a.session.Login(ctx, userID, token); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Logged in.")
}

func (a *App) logoutCmd(ctx context.Context) {
	confirm, err := GetSimpleText(a.reader,
		"Logging out wipes all local data and destroys the encryption key. Type 'yes' to continue", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return
	}

	if err := a.session.Logout(ctx); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Logged out. Local data wiped.")
}
