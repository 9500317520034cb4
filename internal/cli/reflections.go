package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) reflectCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: reflect save|list|del")
		return
	}

	switch args[0] {
	case "save":
		date := today()
		if len(args) > 1 {
			date = args[1]
		}
		text, err := GetMultiline(a.reader, "Reflection for "+date, os.Stdout)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if err := a.reflections.Save(ctx, date, text); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Reflection saved.")
	case "list":
		rows, err := a.reflections.List(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if len(rows) == 0 {
			fmt.Println("No reflections yet.")
			return
		}
		for _, r := range rows {
			text := r.Text
			if r.DecryptFailed {
				text = "<unreadable>"
			}
			fmt.Printf("%s  %s  [%s]  %s\n", r.ID, r.ReadingDate, r.SyncStatus, text)
		}
	case "del":
		if len(args) < 2 {
			fmt.Println("Usage: reflect del <id>")
			return
		}
		if err := a.reflections.Delete(ctx, args[1]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Unknown reflect command:", args[0])
	}
}
