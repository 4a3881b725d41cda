package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rosterhq/roster/internal/common"
	"github.com/rosterhq/roster/internal/schema"
)

// List fetches all users and renders the snapshot.
func (a *App) List(ctx context.Context) error {
	err := a.store.FetchAll(ctx)
	a.render()
	return err
}

// Show fetches a single user by ID, selects it, and renders the snapshot.
// When the id argument is empty the user is prompted for it.
func (a *App) Show(ctx context.Context, id string) error {
	id, err := a.resolveID(id, "Enter user id to show")
	if err != nil {
		return err
	}
	err = a.store.FetchByID(ctx, id)
	a.render()
	return err
}

// Add collects the fields of a new user and creates it through the store.
// Validation failures surface in the rendered error state without any
// request being sent.
func (a *App) Add(ctx context.Context) error {
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
	err = a.store.Create(ctx, in)
	a.render()
	return err
}

// Update collects the changed fields for a user and applies them through the
// store. For every field, blank input keeps the current value, "-" clears it,
// and anything else sets it. When the id argument is empty the user is
// prompted for it.
func (a *App) Update(ctx context.Context, id string) error {
	id, err := a.resolveID(id, "Enter user id to update")
	if err != nil {
		return err
	}

	printlnFn("Blank keeps the current value, '-' clears it.")

	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "New password (blank to keep): ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	in := schema.UpdateUserInput{
		Name:     optionalFromInput(name),
		Email:    optionalFromInput(email),
		Password: optionalFromInput(string(password)),
	}
	err = a.store.Update(ctx, id, in)
	a.render()
	return err
}

// Delete removes a user by ID through the store. When the id argument is
// empty the user is prompted for it.
func (a *App) Delete(ctx context.Context, id string) error {
	id, err := a.resolveID(id, "Enter user id to delete")
	if err != nil {
		return err
	}
	err = a.store.Delete(ctx, id)
	a.render()
	return err
}

// Select marks a locally listed row as selected without touching the server.
// Passing "-" clears the selection. When the id argument is empty the user is
// prompted for it.
func (a *App) Select(ctx context.Context, id string) error {
	id, err := a.resolveID(id, "Enter user id to select ('-' to clear)")
	if err != nil {
		return err
	}

	if id == "-" {
		a.store.SelectUser(nil)
		a.render()
		return nil
	}

	snap := a.store.Snapshot()
	for i := range snap.Users {
		if snap.Users[i].ID == id {
			a.store.SelectUser(&snap.Users[i])
			a.render()
			return nil
		}
	}

	printlnFn("No such user in the local collection:", id)
	return nil
}

// resolveID returns the id argument if present, otherwise prompts for one.
func (a *App) resolveID(id, prompt string) (string, error) {
	if id != "" {
		return id, nil
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}

// render prints the current store snapshot: one row per user with a selection
// marker, then the pending/error footer.
func (a *App) render() {
	snap := a.store.Snapshot()

	if len(snap.Users) == 0 {
		printlnFn("(no users)")
	}
	for _, u := range snap.Users {
		marker := " "
		if snap.Selected != nil && snap.Selected.ID == u.ID {
			marker = "*"
		}
		state := "active"
		if !u.IsActive {
			state = "inactive"
		}
		printlnFn(fmt.Sprintf("%s %s  %s <%s>  %s", marker, u.ID, u.Name, u.Email, state))
	}

	if snap.Pending {
		printlnFn("... pending")
	}
	if snap.LastErr != nil {
		printlnFn("error:", snap.LastErr.Message)
	}
}
