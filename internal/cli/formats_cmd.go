// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// formats_cmd.go - The formats command.
package cli

import (
	"fmt"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/formats"
	"github.com/PoChenKuo/chat-gpt-reader/internal/util"
)

// HandleFormats lists the registry in order with localized names.
func HandleFormats(app *App) error {
	data := app.formatsData()

	if app.Args.JSON {
		return NewJSONResponse("formats", data).PrintTo(app.Stdout)
	}

	idWidth, nameWidth := len("ID"), util.StringWidth(app.T("app.config.selectFormat"))
	for _, f := range data.Formats {
		idWidth = max(idWidth, util.StringWidth(f.ID))
		nameWidth = max(nameWidth, util.StringWidth(f.Name))
	}

	w := app.Stdout
	fmt.Fprintln(w, TitleStyle.Render(app.T("app.config.title")))
	fmt.Fprintln(w, RenderSeparator(GetTerminalWidth()-10))

	for _, f := range data.Formats {
		marker := "  "
		if f.Default {
			marker = "* "
		}
		prefixes := fmt.Sprintf("%s / %s", orDash(f.UserPrefix), orDash(f.AssistantPrefix))
		line := marker + util.PadRight(f.ID, idWidth) + "  " + util.PadRight(f.Name, nameWidth) + "  " + prefixes
		fmt.Fprintln(w, RenderConditional(ValueStyle, line))
		if f.Description != "" {
			indent := strings.Repeat(" ", 2+idWidth+2)
			desc := util.TruncateWidth(util.FirstLine(f.Description), GetTerminalWidth()-len(indent))
			fmt.Fprintln(w, indent+RenderConditional(DimStyle, desc))
		}
	}
	return nil
}

func (a *App) formatsData() FormatsData {
	data := FormatsData{Locale: a.Catalog.Code()}
	for _, f := range a.Formats.List() {
		r := formats.Resolve(f, a.T)
		data.Formats = append(data.Formats, FormatData{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			UserPrefix:      r.UserPrefix,
			AssistantPrefix: r.AssistantPrefix,
			Default:         f.ID == a.Config.DefaultFormat,
		})
	}
	return data
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
