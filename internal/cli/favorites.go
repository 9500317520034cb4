package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) favCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: fav add|list|del")
		return
	}

	switch args[0] {
	case "add":
		meetingID, err := GetSimpleText(a.reader, "Meeting id", os.Stdout)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		note, err := GetSimpleText(a.reader, "Note (optional)", os.Stdout)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		id, err := a.favorites.Add(ctx, meetingID, note)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Saved:", id)
	case "list":
		rows, err := a.favorites.List(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if len(rows) == 0 {
			fmt.Println("No favorite meetings yet.")
			return
		}
		for _, f := range rows {
			note := f.Note
			if f.DecryptFailed {
				note = "<unreadable>"
			}
			fmt.Printf("%s  meeting=%s  [%s]  %s\n", f.ID, f.MeetingID, f.SyncStatus, note)
		}
	case "del":
		if len(args) < 2 {
			fmt.Println("Usage: fav del <id>")
			return
		}
		if err := a.favorites.Remove(ctx, args[1]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Unknown fav command:", args[0])
	}
}
