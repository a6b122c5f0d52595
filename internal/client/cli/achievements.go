package cli

import (
	"context"
	"fmt"
)

// Achievements prints the full achievement catalogue with unlocked markers,
// then a short unlocked summary.
func (a *App) Achievements(ctx context.Context) error {
	all, err := a.achievements.All(ctx)
	if err != nil {
		reportServiceError(err)
		return err
	}

	for _, ach := range all {
		marker := "[ ]"
		if ach.Unlocked {
			marker = "[x]"
		}
		printlnFn(fmt.Sprintf("%s %s — %s (+%d xp)", marker, ach.Title, ach.Description, ach.Experience))
	}

	mine, err := a.achievements.Mine(ctx)
	if err != nil {
		reportServiceError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Unlocked %d of %d.", len(mine), len(all)))
	return nil
}
