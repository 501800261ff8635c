// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"html"
	"strings"
)

// shellPage returns the page the browser opens. It hosts the document in a
// full-size iframe and talks to the surface over a WebSocket at base+"/ws".
func shellPage(title, base string) string {
	r := strings.NewReplacer(
		"{{TITLE}}", html.EscapeString(title),
		"{{BASE}}", base,
	)
	return r.Replace(shellTemplate)
}

const shellTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{TITLE}}</title>
    <style>
        html, body { margin: 0; height: 100vh; font-family: system-ui, sans-serif; }
        #status { position: fixed; top: 8px; right: 12px; color: #666; font-size: 12px; }
        #doc { border: 0; width: 100vw; height: 100vh; }
        @media print { #status { display: none; } }
    </style>
</head>
<body>
    <div id="status">connecting</div>
    <iframe id="doc" title="{{TITLE}}"></iframe>
    <script>
    (function () {
        var base = "{{BASE}}";
        var frame = document.getElementById("doc");
        var status = document.getElementById("status");
        var scheme = location.protocol === "https:" ? "wss://" : "ws://";
        var ws = new WebSocket(scheme + location.host + base + "/ws");
        var pending = false;

        function send(type) {
            if (ws.readyState === WebSocket.OPEN) {
                ws.send(JSON.stringify({ type: type }));
            }
        }

        frame.addEventListener("load", function () {
            if (!pending) {
                return;
            }
            pending = false;
            status.textContent = "loaded";
            send("loaded");
        });

        ws.onopen = function () { status.textContent = "waiting for document"; };
        ws.onclose = function () { status.textContent = "done"; };

        ws.onmessage = function (event) {
            var msg = JSON.parse(event.data);
            switch (msg.type) {
            case "document":
                pending = true;
                frame.src = msg.src;
                break;
            case "print":
                status.textContent = "printing";
                frame.contentWindow.focus();
                frame.contentWindow.print();
                send("printed");
                break;
            case "close":
                status.textContent = "you can close this tab";
                ws.close();
                window.close();
                break;
            }
        };
    })();
    </script>
</body>
</html>
`
