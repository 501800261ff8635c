// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// print_cmd.go - The print command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PoChenKuo/chat-gpt-reader/internal/browser"
	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
)

// PrintData is the JSON shape of a successful print.
type PrintData struct {
	Title      string `json:"title"`
	SourceFile string `json:"source_file,omitempty"`
	Format     string `json:"format,omitempty"`
	Turns      int    `json:"turns"`
	User       int    `json:"user_turns"`
	Assistant  int    `json:"assistant_turns"`
	Total      int    `json:"total"`
	Headers    bool   `json:"headers"`
}

// HandlePrint parses the transcript and prints it through the browser, or
// writes the printable page to stdout with --stdout.
func HandlePrint(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C while waiting for the browser gives up on the surface.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return runPrint(ctx, app, app.surfaceFactory())
}

func runPrint(ctx context.Context, app *App, factory printing.SurfaceFactory) error {
	in, err := app.loadInput()
	if err != nil {
		return err
	}

	visibility := app.visibility()
	req := printing.Request{
		Turns:      in.Turns,
		Title:      in.Title,
		SourceFile: in.SourceFile,
		Visibility: visibility,
		Labels:     app.T,
		Lang:       app.Catalog.Code(),
	}

	renderer := printing.NewRenderer(factory, NewTerminalNotifier(app),
		printing.WithLogger(app.Logger),
		printing.WithStateHook(func(id string, state printing.State) {
			app.Logger.Printf("PRINT_STATE | id=%s state=%s", id, state)
		}),
	)

	if err := renderer.RenderAndPrint(ctx, req); err != nil {
		return err
	}

	data := PrintData{
		Title:      req.Title,
		SourceFile: in.SourceFile,
		Format:     in.Format.ID,
		Turns:      in.Len(),
		User:       in.CountByRole(model.RoleUser),
		Assistant:  in.CountByRole(model.RoleService),
		Total:      in.Total,
		Headers:    visibility.ShowHeader(),
	}
	if app.Args.JSON && !app.Args.Stdout {
		return NewJSONResponse("print", data).PrintTo(app.Stdout)
	}
	if !app.Args.Stdout {
		fmt.Fprintf(app.Stderr, "%s %d/%d turns sent to the print dialog\n",
			SuccessStyle.Render("[OK]"), data.Turns, data.Total)
	}
	return nil
}

// printTitle picks --title, then the configured title, then the localized
// default.
func (a *App) printTitle() string {
	if a.Args.Title != "" {
		return a.Args.Title
	}
	if a.Config.Print.Title != "" {
		return a.Config.Print.Title
	}
	return a.T("app.print.title")
}

// surfaceFactory returns the stdout writer for --stdout and a browser
// factory otherwise.
func (a *App) surfaceFactory() printing.SurfaceFactory {
	if a.Args.Stdout {
		return printing.WriterFactory(a.Stdout)
	}
	p := a.Config.Print
	return browser.NewFactory(browser.Config{
		Host:           p.Host,
		AcquireTimeout: p.AcquireTimeout(),
		LoadTimeout:    p.LoadTimeout(),
		PrintTimeout:   p.PrintTimeout(),
		Title:          a.printTitle(),
		Logger:         a.Logger,
	}, browser.OSLauncher{Command: p.Browser})
}
