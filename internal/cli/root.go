package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus(ctx context.Context) string {
	s, err := a.status.Status(ctx)
	if err != nil {
		return ""
	}
	if s.Pending == 0 && len(s.Failed) == 0 {
		return ""
	}
	return fmt.Sprintf("(%d pending)", s.Pending+len(s.Failed))
}

// Root runs the interactive loop. It exits on EOF or "exit"/"quit".
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Stillwater (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("stillwater %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Commands:")
			fmt.Println("  journal add|list|show|edit|del   private journal entries")
			fmt.Println("  checkin morning|evening|show     daily check-ins")
			fmt.Println("  streak                           current check-in streak")
			fmt.Println("  step answer|list|del             step-work answers")
			fmt.Println("  fav add|list|del                 favorite meetings")
			fmt.Println("  reflect save|list|del            daily-reading reflections")
			fmt.Println("  sync                             push pending changes now")
			fmt.Println("  status                           sync queue status")
			fmt.Println("  login / logout                   remote session")
			fmt.Println("  exit")

		case "journal":
			a.journalCmd(ctx, args)
		case "checkin":
			a.checkinCmd(ctx, args)
		case "streak":
			a.streakCmd(ctx)
		case "step":
			a.stepCmd(ctx, args)
		case "fav":
			a.favCmd(ctx, args)
		case "reflect":
			a.reflectCmd(ctx, args)
		case "sync":
			a.syncCmd(ctx)
		case "status":
			a.statusCmd(ctx)
		case "login":
			a.loginCmd(ctx)
		case "logout":
			a.logoutCmd(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
