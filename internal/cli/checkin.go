package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/stillwater-app/stillwater/internal/models"
)

func today() string {
	return time.Now().Format(time.DateOnly)
}

func (a *App) checkinCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: checkin morning|evening|show")
		return
	}

	switch args[0] {
	case "morning":
		a.recordCheckin(ctx, models.CheckinMorning)
	case "evening":
		a.recordCheckin(ctx, models.CheckinEvening)
	case "show":
		a.checkinShow(ctx, args[1:])
	default:
		fmt.Println("Unknown checkin command:", args[0])
	}
}

func (a *App) recordCheckin(ctx context.Context, typ models.CheckinType) {
	prompt := "Intention for today"
	if typ == models.CheckinEvening {
		prompt = "Reflection on today"
	}
	text, err := GetMultiline(a.reader, prompt, os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	mood, err := GetSimpleText(a.reader, "Mood (optional)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	craving, err := GetInt(a.reader, "Craving level (0-10, 0 for none)", 0, 10, os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if typ == models.CheckinMorning {
		err = a.checkins.RecordMorning(ctx, today(), text, mood, craving)
	} else {
		err = a.checkins.RecordEvening(ctx, today(), text, mood, craving)
	}
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Check-in recorded.")
}

func (a *App) checkinShow(ctx context.Context, args []string) {
	date := today()
	if len(args) > 0 {
		date = args[0]
	}

	for _, typ := range []models.CheckinType{models.CheckinMorning, models.CheckinEvening} {
		v, err := a.checkins.GetDay(ctx, date, typ)
		if err != nil {
			continue
		}
		if v.DecryptFailed {
			fmt.Printf("%s %s: <unreadable>\n", date, typ)
			continue
		}
		fmt.Printf("%s %s: %s", date, typ, v.Text)
		if v.Mood != "" {
			fmt.Printf(" (mood: %s)", v.Mood)
		}
		if v.CravingLevel > 0 {
			fmt.Printf(" (craving: %d)", v.CravingLevel)
		}
		fmt.Println()
	}
}

func (a *App) streakCmd(ctx context.Context) {
	days, milestone, err := a.checkins.Streak(ctx, today())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Current streak: %d day(s)\n", days)
	if milestone > 0 {
		fmt.Printf("Milestone reached: %d days\n", milestone)
	}
}
