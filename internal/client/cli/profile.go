package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
)

// Profile prints the merged profile: the backend's view with the local
// overlay fields applied on top.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profiles.CurrentProfile(ctx)
	if err != nil {
		fmt.Printf("Failed to load profile: %s\n", err.Error())
		return err
	}

	fmt.Printf("Name:   %s\n", p.Name)
	fmt.Printf("Email:  %s\n", p.Email)
	if p.AvatarIndex != nil {
		fmt.Printf("Avatar: #%d\n", *p.AvatarIndex)
	}
	if p.Bio != "" {
		fmt.Printf("Bio:    %s\n", p.Bio)
	}
	if p.Phone != "" {
		fmt.Printf("Phone:  %s\n", p.Phone)
	}
	fmt.Printf("Shakes: %d today, %d total\n", p.DailyShakes, p.TotalShakes)
	return nil
}

// Edit updates one of the client-side profile fields. Usage:
//
//	edit avatar 3
//	edit bio    (prompts for the text)
//	edit phone  (prompts for the number)
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: edit avatar|bio|phone [value]")
		return nil
	}

	var field string
	switch args[0] {
	case "avatar":
		field = models.OverlayFieldAvatarIndex
	case "bio":
		field = models.OverlayFieldBio
	case "phone":
		field = models.OverlayFieldPhone
	default:
		fmt.Println("Unknown field:", args[0])
		return nil
	}

	value := ""
	if len(args) > 1 {
		value = args[1]
	} else {
		v, err := getSimpleText(a.reader, "Enter "+args[0], os.Stdout)
		if err != nil {
			return err
		}
		value = v
	}

	if _, err := a.profiles.UpdateProfile(ctx, a.userKey, map[string]string{field: value}); err != nil {
		fmt.Printf("Update failed (the edit is kept locally): %s\n", err.Error())
		return err
	}

	fmt.Println("Profile updated.")
	return nil
}
