package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Register prompts for account details and creates a new account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	email, err := getSimpleText(a.reader, "Enter email (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Register(ctx, username, password, email, "", ""); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the access token is held in memory for the session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Login(ctx, username, password); err != nil {
		return err
	}

	a.userName = username
	fmt.Println("Logged in.")
	return nil
}

func (a *App) List(ctx context.Context) error {
	result, err := a.api.ListNotes(ctx)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		fmt.Println("No notes.")
		return nil
	}
	for _, n := range result {
		fmt.Printf("%s  %s\n", n.ID, n.Title)
	}
	return nil
}

func (a *App) Search(ctx context.Context, text string) error {
	result, err := a.api.SearchNotes(ctx, text)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		fmt.Println("No notes.")
		return nil
	}
	for _, n := range result {
		fmt.Printf("%s  %s\n", n.ID, n.Title)
	}
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <id>")
	}
	note, err := a.api.GetNote(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n\n%s\n", note.Title, note.Content)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.api.CreateNote(ctx, title, content)
	if err != nil {
		return err
	}
	fmt.Println("Created note", note.ID)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: update <id>")
	}
	title, err := getSimpleText(a.reader, "Enter new title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter new content (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var titlePtr, contentPtr *string
	if title != "" {
		titlePtr = &title
	}
	if content != "" {
		contentPtr = &content
	}

	note, err := a.api.UpdateNote(ctx, args[0], titlePtr, contentPtr)
	if err != nil {
		return err
	}
	fmt.Println("Updated note", note.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	deleted, err := a.api.DeleteNote(ctx, args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Note not found.")
		return nil
	}
	fmt.Println("Deleted.")
	return nil
}

// Share transfers the note to another user; afterwards it disappears from
// this account's listings.
func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: share <id> <userId>")
	}
	if err := a.api.ShareNote(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Shared.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("id: %s\nusername: %s\n", p.ID, p.Username)
	return nil
}

// DeleteAccount removes the account and all of its notes.
func (a *App) DeleteAccount(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader, "Type 'yes' to delete your account and all notes", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Println("Aborted.")
		return nil
	}
	if err := a.api.DeleteAccount(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Println("Account deleted.")
	return nil
}
