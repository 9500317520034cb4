package cli

import (
	"context"
	"fmt"
)

func (a *App) syncCmd(ctx context.Context) {
	res := a.engine.ProcessQueue(ctx)
	fmt.Printf("Synced %d, failed %d\n", res.Synced, res.Failed)
	for _, e := range res.Errors {
		fmt.Println("  -", e)
	}
}

func (a *App) statusCmd(ctx context.Context) {
	s, err := a.status.Status(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Pending changes: %d\n", s.Pending)
	if len(s.Failed) == 0 {
		return
	}
	fmt.Printf("Permanently failed: %d\n", len(s.Failed))
	for _, f := range s.Failed {
		fmt.Printf("  %s %s/%s (retries: %d): %s\n",
			f.Operation, f.TableName, f.RecordID, f.RetryCount, f.LastError)
	}
}
