package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) journalCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: journal add|list|show|edit|del")
		return
	}

	switch args[0] {
	case "add":
		a.journalAdd(ctx)
	case "list":
		a.journalList(ctx)
	case "show":
		if len(args) < 2 {
			fmt.Println("Usage: journal show <id>")
			return
		}
		a.journalShow(ctx, args[1])
	case "edit":
		if len(args) < 2 {
			fmt.Println("Usage: journal edit <id>")
			return
		}
		a.journalEdit(ctx, args[1])
	case "del":
		if len(args) < 2 {
			fmt.Println("Usage: journal del <id>")
			return
		}
		if err := a.journal.Delete(ctx, args[1]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Unknown journal command:", args[0])
	}
}

func (a *App) journalAdd(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	body, err := GetMultiline(a.reader, "Entry", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	mood, err := GetSimpleText(a.reader, "Mood (optional)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	id, err := a.journal.Add(ctx, title, body, mood)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Saved:", id)
}

func (a *App) journalEdit(ctx context.Context, id string) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	body, err := GetMultiline(a.reader, "Entry", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	mood, err := GetSimpleText(a.reader, "Mood (optional)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if err := a.journal.Update(ctx, id, title, body, mood); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Updated.")
}

func (a *App) journalList(ctx context.Context) {
	entries, err := a.journal.List(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return
	}
	for _, e := range entries {
		title := e.Title
		if e.DecryptFailed {
			title = "<unreadable>"
		}
		fmt.Printf("%s  %s  [%s]  %s\n", e.ID, e.CreatedAt, e.SyncStatus, title)
	}
}

func (a *App) journalShow(ctx context.Context, id string) {
	e, err := a.journal.Get(ctx, id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if e.DecryptFailed {
		fmt.Println("This entry could not be decrypted.")
		return
	}
	fmt.Println("Title:", e.Title)
	if e.Mood != "" {
		fmt.Println("Mood:", e.Mood)
	}
	fmt.Println(e.Body)
}
