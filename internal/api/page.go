package api

import (
	"html/template"
	"net/http"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	statusPage.Execute(w, nil)
}

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>pointZ Host</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'SF Pro Display', 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
            color: #e2e8f0;
            min-height: 100vh;
            padding: 2rem;
        }
        .container { max-width: 640px; margin: 0 auto; }
        h1 {
            font-size: 2rem;
            font-weight: 700;
            margin-bottom: 2rem;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            -webkit-background-clip: text;
            -webkit-text-fill-color: transparent;
        }
        .card {
            background: rgba(255,255,255,0.05);
            backdrop-filter: blur(20px);
            border: 1px solid rgba(255,255,255,0.1);
            border-radius: 16px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .card h2 { font-size: 1.25rem; margin-bottom: 1rem; color: #a5b4fc; }
        .row {
            display: flex;
            justify-content: space-between;
            padding: 0.4rem 0;
            border-bottom: 1px solid rgba(255,255,255,0.05);
        }
        .row:last-child { border-bottom: none; }
        .row .label { color: #94a3b8; }
        .row .value { font-weight: 600; }
        a.download {
            display: inline-block;
            margin-top: 0.5rem;
            padding: 0.6rem 1.2rem;
            border-radius: 10px;
            background: rgba(102,126,234,0.25);
            color: #a5b4fc;
            text-decoration: none;
            font-weight: 600;
        }
        a.download:hover { background: rgba(102,126,234,0.4); }
        #feed { list-style: none; }
        #feed li {
            padding: 0.35rem 0.6rem;
            margin-bottom: 0.3rem;
            border-radius: 8px;
            background: rgba(255,255,255,0.03);
            font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
            font-size: 0.85rem;
        }
        #feed-state { color: #94a3b8; font-size: 0.85rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>pointZ Host</h1>

        <div class="card">
            <h2>This machine</h2>
            <div class="row"><span class="label">Hostname</span><span class="value" id="hostname">–</span></div>
            <div class="row"><span class="label">Address</span><span class="value" id="ip">–</span></div>
            <div class="row"><span class="label">Discovery port</span><span class="value" id="discovery-port">–</span></div>
            <div class="row"><span class="label">Command port</span><span class="value" id="command-port">–</span></div>
        </div>

        <div class="card">
            <h2>Connect a device</h2>
            <p>Install the pointZ app on your phone, join the same network, and this host will show up automatically.</p>
            <a class="download" id="download" href="#" target="_blank" rel="noopener">Get the app</a>
        </div>

        <div class="card">
            <h2>Activity</h2>
            <span id="feed-state">waiting for commands…</span>
            <ul id="feed"></ul>
        </div>
    </div>

    <script>
        async function loadStatus() {
            try {
                const resp = await fetch('/status');
                const status = await resp.json();
                document.getElementById('hostname').textContent = status.hostname;
                document.getElementById('ip').textContent = status.ip || 'unknown';
                document.getElementById('discovery-port').textContent = status.discovery_port;
                document.getElementById('command-port').textContent = status.command_port;
                document.getElementById('download').href = status.app_download_url;
            } catch (e) {
                document.getElementById('hostname').textContent = 'unreachable';
            }
        }

        function connectFeed() {
            const ws = new WebSocket('ws://' + location.host + '/ws');
            const feed = document.getElementById('feed');
            const state = document.getElementById('feed-state');

            ws.onopen = () => { state.textContent = 'live'; };
            ws.onmessage = (event) => {
                const msg = JSON.parse(event.data);
                if (msg.type !== 'activity') return;
                const li = document.createElement('li');
                li.textContent = new Date().toLocaleTimeString() + '  ' + msg.payload.command;
                feed.prepend(li);
                while (feed.children.length > 8) feed.removeChild(feed.lastChild);
            };
            ws.onclose = () => {
                state.textContent = 'reconnecting…';
                setTimeout(connectFeed, 3000);
            };
        }

        loadStatus();
        connectFeed();
    </script>
</body>
</html>`))
