package server

// dashboardHTML is the single-page dashboard. Series data comes from the
// JSON API; plotting happens client-side.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Symbol}} Futures Dashboard</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
  body { background: #f5f5f5; font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; padding: 20px 0; }
  h1 { text-align: center; color: #2c3e50; margin: 20px 0; }
  .wrap { max-width: 1400px; margin: 0 auto; padding: 0 20px; }
  .cards { display: flex; gap: 15px; margin-bottom: 30px; }
  .card { flex: 1; padding: 20px; background: white; border-radius: 10px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
  .card h3 { margin: 0; color: #2c3e50; font-size: 0.9em; }
  .card h2 { margin: 10px 0; font-size: 2em; }
  .card p { margin: 0; color: #7f8c8d; font-size: 0.8em; }
  #chart { background: white; border-radius: 10px; padding: 10px; }
</style>
</head>
<body>
<h1>{{.Symbol}} Futures Dashboard</h1>
<div class="wrap">
  <div class="cards">
    <div class="card"><h3>Current 2-Year Yield</h3><h2 id="yield" style="color:#3498db">–</h2><p id="latest"></p></div>
    <div class="card"><h3>2s10s Spread</h3><h2 id="spread" style="color:#e74c3c">–</h2><p>Difference between 2-year and 10-year yields</p></div>
    <div class="card"><h3>1-Month Volatility</h3><h2 id="vol" style="color:#27ae60">–</h2><p>Rolling &sigma; of daily yield changes</p></div>
    <div class="card"><h3>Fed Funds Upper Bound</h3><h2 id="fed" style="color:#9b59b6">–</h2><p>Current policy rate</p></div>
  </div>
  <div id="chart"></div>
</div>
<script>
const colors = ['#e41a1c','#377eb8','#4daf4a','#984ea3','#ff7f00','#a65628'];

fetch('/api/metrics').then(r => r.json()).then(m => {
  document.getElementById('yield').textContent = m.current_yield.toFixed(2) + '%';
  document.getElementById('latest').textContent = 'Latest: ' + (m.latest_at || '').replace('T', ' ').slice(0, 16);
  document.getElementById('spread').textContent = m.two_ten_spread.toFixed(2) + '%';
  document.getElementById('vol').textContent = m.volatility_bps.toFixed(2) + ' bps';
  document.getElementById('fed').textContent = m.fed_funds_upper.toFixed(2) + '%';
});

fetch('/api/sessions').then(r => r.json()).then(data => {
  const traces = data.sessions.map((s, i) => ({
    x: s.points.map(p => p.timestamp),
    y: s.points.map(p => p.relative_yield),
    mode: 'lines',
    name: s.label,
    line: { color: colors[i % colors.length], width: 2.5 }
  }));
  if (data.hourly_average.length > 0) {
    traces.push({
      x: data.hourly_average.map(p => p.timestamp),
      y: data.hourly_average.map(p => p.relative_yield),
      mode: 'lines',
      name: 'Avg',
      line: { color: 'black', width: 2, dash: 'dash' }
    });
  }
  Plotly.newPlot('chart', traces, {
    title: '{{.Symbol}} Futures Yield (Relative)',
    height: 500,
    xaxis: { title: 'Time', gridcolor: '#e0e0e0' },
    yaxis: { title: 'Relative Yield', gridcolor: '#e0e0e0', zeroline: true, zerolinecolor: '#b0b0b0' },
    legend: { orientation: 'h', yanchor: 'bottom', y: 1.02, xanchor: 'right', x: 1 },
    plot_bgcolor: 'white',
    paper_bgcolor: 'white'
  }, { responsive: true });
});
</script>
</body>
</html>
`
