// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter renders the standalone printable page.
type HTMLExporter struct{}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Export renders doc as a complete HTML page.
func (e *HTMLExporter) Export(doc *Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}
	return BuildPrintDocument(doc), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html; charset=utf-8"
}

// BuildPrintDocument assembles the header block and one message block per
// turn, in order, into a full HTML page. Title, file name and content are
// inserted verbatim.
func BuildPrintDocument(doc *Document) []byte {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(fmt.Sprintf("<html lang=\"%s\">\n", lang))
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", doc.Title))
	sb.WriteString("    <meta name=\"generator\" content=\"chat-gpt-reader\">\n")
	sb.WriteString(printCSS)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")

	sb.WriteString(renderHeader(doc))

	sb.WriteString("    <div class=\"messages\">\n")
	for _, turn := range doc.Turns {
		sb.WriteString(renderTurn(doc, turn))
	}
	sb.WriteString("    </div>\n")

	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String())
}

// renderHeader renders the title and, when a file name is known, the
// source file line.
func renderHeader(doc *Document) string {
	var sb strings.Builder

	sb.WriteString("    <div class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("        <h1 class=\"title\">%s</h1>\n", doc.Title))
	if doc.SourceFile != "" {
		sb.WriteString(fmt.Sprintf("        <p class=\"file-info\">%s: %s</p>\n", doc.label(KeySourceFile), doc.SourceFile))
	}
	sb.WriteString("    </div>\n")

	return sb.String()
}

// renderTurn renders one message block.
func renderTurn(doc *Document, turn model.Turn) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("        <div class=\"message message-%s\">\n", turn.Role))
	if doc.ShowHeaders {
		sb.WriteString("            <div class=\"message-header\">\n")
		sb.WriteString(fmt.Sprintf("                <span class=\"message-role\">%s</span>\n", doc.roleLabel(turn.Role)))
		if turn.HasTimestamp() {
			sb.WriteString(fmt.Sprintf("                <span class=\"message-time\">%s</span>\n", turn.Timestamp))
		}
		sb.WriteString("            </div>\n")
	}
	sb.WriteString(fmt.Sprintf("            <div class=\"message-content\">%s</div>\n", turn.Content))
	sb.WriteString("        </div>\n")

	return sb.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// printCSS styles the page for paper: no backgrounds, no shadows, and
// messages kept on one page where possible.
const printCSS = `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Noto Sans TC", "Helvetica Neue", Arial, sans-serif;
            font-size: 12pt;
            line-height: 1.6;
            color: #24292e;
            padding: 24px;
        }

        .header {
            padding-bottom: 12px;
            margin-bottom: 20px;
            border-bottom: 2px solid #e1e4e8;
        }

        .title {
            font-size: 20pt;
            font-weight: 700;
        }

        .file-info {
            margin-top: 6px;
            font-size: 10pt;
            color: #586069;
        }

        .message {
            margin-bottom: 16px;
            padding: 12px 16px;
            border-left: 4px solid #e1e4e8;
        }

        .message-user {
            border-left-color: #0366d6;
            background: #f6f8fa;
        }

        .message-service {
            border-left-color: #22863a;
        }

        .message-header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 8px;
            font-size: 10pt;
        }

        .message-role {
            font-weight: 600;
        }

        .message-time {
            color: #6a737d;
            font-family: "SF Mono", Monaco, Consolas, monospace;
        }

        .message-content {
            white-space: pre-wrap;
            word-wrap: break-word;
        }

        @media print {
            body {
                padding: 0;
            }

            .message {
                page-break-inside: avoid;
                -webkit-print-color-adjust: exact;
                print-color-adjust: exact;
            }
        }
    </style>
`
