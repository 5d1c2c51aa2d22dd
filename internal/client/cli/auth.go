package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates an account.
// On success the session is established immediately.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	profile, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.establishSession(profile, email)
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	profile, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.establishSession(profile, email)
	a.setMode(ModeOnline)
	log.Printf("Login successful")
	return nil
}

// Forgot requests a password reset for an email address. The backend
// answers the same way for known and unknown accounts.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.SendPasswordReset(ctx, email); err != nil {
		fmt.Printf("Could not request a reset: %s\n", err.Error())
		return err
	}

	fmt.Println("If the account exists, reset instructions have been sent.")
	return nil
}

// Logout discards the session token and the local profile overlay.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx, a.userKey); err != nil {
		return err
	}
	a.userKey = ""
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}

func (a *App) establishSession(profile *models.Profile, email string) {
	a.userKey = email
	a.userName = email
	if profile != nil {
		a.userKey = profile.UserKey()
		if profile.Name != "" {
			a.userName = profile.Name
		}
	}
}
