package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) stepCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: step answer|list|del")
		return
	}

	switch args[0] {
	case "answer":
		a.stepAnswer(ctx)
	case "list":
		if len(args) < 2 {
			fmt.Println("Usage: step list <step-number>")
			return
		}
		step, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("error: step must be a number")
			return
		}
		a.stepList(ctx, step)
	case "del":
		if len(args) < 2 {
			fmt.Println("Usage: step del <id>")
			return
		}
		if err := a.stepWork.Delete(ctx, args[1]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Unknown step command:", args[0])
	}
}

func (a *App) stepAnswer(ctx context.Context) {
	step, err := GetInt(a.reader, "Step number (1-12)", 1, 12, os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	question, err := GetInt(a.reader, "Question number", 1, 999, os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	answer, err := GetMultiline(a.reader, "Answer", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	done, err := GetSimpleText(a.reader, "Mark step complete? (y/N)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if err := a.stepWork.SaveAnswer(ctx, step, question, answer, done == "y" || done == "Y"); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Answer saved.")
}

func (a *App) stepList(ctx context.Context, step int) {
	rows, err := a.stepWork.ListStep(ctx, step)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(rows) == 0 {
		fmt.Printf("No answers for step %d yet.\n", step)
		return
	}
	for _, w := range rows {
		answer := w.Answer
		if w.DecryptFailed {
			answer = "<unreadable>"
		}
		mark := " "
		if w.IsComplete {
			mark = "x"
		}
		fmt.Printf("%s  q%d [%s]  %s\n", w.ID, w.QuestionIndex, mark, answer)
	}
}
