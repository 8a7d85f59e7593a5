package dashboard

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ShopScope Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', -apple-system, system-ui, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; }
        .header { background: linear-gradient(135deg, #1e293b, #334155); padding: 1.5rem 2rem; border-bottom: 1px solid #475569; }
        .header h1 { font-size: 1.5rem; color: #38bdf8; }
        form { display: flex; gap: 0.5rem; padding: 2rem 2rem 0; }
        input, select, button { background: #1e293b; color: #e2e8f0; border: 1px solid #475569; border-radius: 8px; padding: 0.5rem 0.75rem; font-size: 0.95rem; }
        input { flex: 1; }
        button { background: #0369a1; cursor: pointer; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 1rem; padding: 2rem; }
        .card { background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.25rem; }
        .card .label { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.05em; color: #94a3b8; margin-bottom: 0.5rem; }
        .card .value { font-size: 1.75rem; font-weight: 700; color: #f1f5f9; }
        .card.error .value { color: #f87171; }
        #result { margin: 0 2rem; background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.25rem; white-space: pre-wrap; font-family: monospace; min-height: 4rem; }
        .footer { text-align: center; padding: 1rem; color: #475569; font-size: 0.75rem; }
    </style>
</head>
<body>
    <div class="header"><h1>ShopScope Dashboard</h1></div>
    <form id="analyze">
        <input id="url" type="url" placeholder="https://shop.example/category" required>
        <select id="analyzer">
            {{range .Analyzers}}<option value="{{.Name}}">{{.Title}}</option>
            {{end}}
        </select>
        <button type="submit">Analyze</button>
    </form>
    <div class="grid">
        <div class="card"><div class="label">Pages Fetched</div><div class="value" id="pages_fetched">0</div></div>
        <div class="card error"><div class="label">Fetches Failed</div><div class="value" id="fetches_failed">0</div></div>
        <div class="card"><div class="label">Analyses Run</div><div class="value" id="analyses_run">0</div></div>
        <div class="card"><div class="label">No Data</div><div class="value" id="analyses_no_data">0</div></div>
        <div class="card"><div class="label">Bytes Downloaded</div><div class="value" id="bytes_downloaded">0</div></div>
    </div>
    <div id="result">Pick an analyzer and enter a URL.</div>
    <div class="footer">ShopScope {{.Version}}. Counters refresh every 2s.</div>
    <script>
        async function refresh() {
            try {
                const r = await fetch('/dashboard/stats');
                const d = await r.json();
                ['pages_fetched','fetches_failed','analyses_run','analyses_no_data','bytes_downloaded'].forEach(k => {
                    const el = document.getElementById(k);
                    if (el && d[k] !== undefined) el.textContent = Number(d[k]).toLocaleString();
                });
            } catch(e) {}
        }
        document.getElementById('analyze').addEventListener('submit', async ev => {
            ev.preventDefault();
            const q = new URLSearchParams({
                url: document.getElementById('url').value,
                analyzer: document.getElementById('analyzer').value,
                format: 'text',
            });
            const out = document.getElementById('result');
            out.textContent = 'Analyzing...';
            const r = await fetch('/api/v1/analyze?' + q);
            const body = await r.text();
            try { out.textContent = JSON.parse(body).error; } catch(e) { out.textContent = body; }
            refresh();
        });
        setInterval(refresh, 2000);
        refresh();
    </script>
</body>
</html>`
