package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Schedule lists the club activities with enrollment markers.
func (a *App) Schedule(ctx context.Context) error {
	activities, err := a.activities.List(ctx)
	if err != nil {
		reportServiceError(err)
		return err
	}
	if len(activities) == 0 {
		printlnFn("No activities scheduled.")
		return nil
	}

	for _, act := range activities {
		marker := " "
		if act.Enrolled {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%d] %s at %s (free slots: %d)",
			marker, act.ID, act.Title, act.StartAt.Format("2006-01-02 15:04"), act.FreeSlots))
	}
	printlnFn("* — you are enrolled")
	return nil
}

// Enroll asks for an activity ID and enrolls the user into it.
func (a *App) Enroll(ctx context.Context) error {
	id, err := promptActivityID(a, "Activity ID to enroll into")
	if err != nil || id == 0 {
		return err
	}

	if err := a.activities.Enroll(ctx, id); err != nil {
		reportServiceError(err)
		return err
	}
	printlnFn("Enrolled.")
	return nil
}

// CancelEnrollment asks for an activity ID and cancels the enrollment.
func (a *App) CancelEnrollment(ctx context.Context) error {
	id, err := promptActivityID(a, "Activity ID to cancel")
	if err != nil || id == 0 {
		return err
	}

	if err := a.activities.Cancel(ctx, id); err != nil {
		reportServiceError(err)
		return err
	}
	printlnFn("Enrollment cancelled.")
	return nil
}

// promptActivityID reads and parses an activity ID. Returns 0 with a nil
// error when the input was not a number; the caller treats that as "nothing
// to do" after the message has been shown.
func promptActivityID(a *App, prompt string) (int64, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, convErr := strconv.ParseInt(text, 10, 64)
	if convErr != nil || id <= 0 {
		printlnFn("Expected a positive activity ID.")
		return 0, nil
	}
	return id, nil
}
