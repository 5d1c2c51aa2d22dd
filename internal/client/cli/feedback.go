package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
)

// Feedback prompts for a short report and submits it to the backend.
func (a *App) Feedback(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Subject", os.Stdout)
	if err != nil {
		return err
	}

	message, err := getSimpleText(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}
	if message == "" {
		fmt.Println("Feedback needs a message.")
		return nil
	}

	fb := models.Feedback{Title: title, Message: message, Category: "app"}
	if err := a.apiClient.SubmitFeedback(ctx, fb); err != nil {
		fmt.Printf("Failed to send feedback: %s\n", err.Error())
		return err
	}

	fmt.Println("Thanks for the feedback!")
	return nil
}
