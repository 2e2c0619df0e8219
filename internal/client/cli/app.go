// Package cli implements the interactive REPL of the notekeeper client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akosarev/notekeeper/internal/client/api"
	"github.com/akosarev/notekeeper/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	reader   *bufio.Reader
	userName string
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		api:    api.NewClient(cfg.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to notekeeper CLI (type 'help' for commands)")

	for {
		fmt.Printf("nk %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if err := a.dispatch(ctx, cmd, args); err != nil {
			if cmd == "exit" {
				return
			}
			fmt.Println("Error:", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.api.LoggedIn() {
			fmt.Println("Available commands: list, search <text>, get <id>, add, update <id>, delete <id>, share <id> <userId>, profile, deleteaccount, exit")
		} else {
			fmt.Println("Available commands: register, login, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, strings.Join(args, " "))
	case "get":
		return a.Get(ctx, args)
	case "add":
		return a.Add(ctx)
	case "update":
		return a.Update(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "share":
		return a.Share(ctx, args)
	case "profile":
		return a.Profile(ctx)
	case "deleteaccount":
		return a.DeleteAccount(ctx)
	case "exit":
		return fmt.Errorf("exit")
	default:
		fmt.Println("Unknown command (type 'help' for commands)")
		return nil
	}
}
