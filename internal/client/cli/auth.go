package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rosterhq/roster/internal/common"
	"github.com/rosterhq/roster/internal/schema"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a name, an email and a password and attempts
// to create a new account.
//
// Registration does not sign the user in; on success the user is told to run
// 'login'. The password byte slice is wiped before returning. Any I/O or
// session error is reported to the user and returned unchanged.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	in := schema.CreateUserInput{Name: name, Email: email, Password: string(password)}
	u, err := a.session.Register(ctx, in)
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Account %s created. Use 'login' to sign in.", u.Email))
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the email appears in the prompt until logout.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.userEmail = email
	printlnFn("Logged in.")
	return nil
}

// Logout discards the local token pair. The server keeps no session state
// beyond the refresh token, which simply stops being used.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.userEmail = ""
	printlnFn("Logged out.")
	return nil
}
