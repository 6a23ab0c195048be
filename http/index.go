package http

// indexPage is the single-page dashboard shell. The form is built from
// /api/catalog and every widget change re-evaluates the prediction over
// the websocket, falling back to POST /api/predict when the socket is
// unavailable.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>EmpowerHER</title>
<style>
  body { font-family: sans-serif; margin: 2em auto; max-width: 860px; color: #232323; }
  h1 { color: #008080; }
  .banner { padding: 1em; border-radius: 6px; font-weight: bold; margin: 1em 0; }
  .banner.high { background: #fde2e2; color: #9b1c1c; }
  .banner.low { background: #def7e5; color: #14532d; }
  .banner.error { background: #fef3c7; color: #92400e; }
  label { display: block; margin-top: 0.8em; }
  select { width: 100%; padding: 0.3em; }
  section { margin-top: 2em; }
</style>
</head>
<body>
<h1>EmpowerHER</h1>
<p>Your information for risk prediction</p>
<form id="risk-form"></form>
<div id="result" class="banner low"></div>
<section>
  <h2>Daily Rituals</h2>
  <ul id="tips"></ul>
  <h2>Local Support Groups</h2>
  <ul id="groups"></ul>
</section>
<script>
let socket = null;

async function loadCatalog() {
  const res = await fetch('/api/catalog');
  const data = await res.json();
  const form = document.getElementById('risk-form');
  for (const field of data.fields) {
    const label = document.createElement('label');
    label.textContent = field.label;
    const select = document.createElement('select');
    select.name = field.name;
    for (const code of field.codes) {
      const option = document.createElement('option');
      option.value = code;
      option.textContent = field.domain[code];
      select.appendChild(option);
    }
    select.addEventListener('change', classify);
    label.appendChild(select);
    form.appendChild(label);
  }
}

function selections() {
  const out = {};
  for (const select of document.querySelectorAll('#risk-form select')) {
    out[select.name] = parseInt(select.value, 10);
  }
  return out;
}

function render(msg) {
  const box = document.getElementById('result');
  if (msg.type === 'error') {
    box.className = 'banner error';
    box.textContent = msg.data.message;
    return;
  }
  const p = msg.data;
  box.className = p.risk === 'High risk' ? 'banner high' : 'banner low';
  box.textContent = 'Predicted probability of breast cancer: ' + p.probability_display +
    ' — ' + p.risk + ' (threshold = ' + p.threshold.toFixed(2) + ')';
}

async function classify() {
  if (socket && socket.readyState === WebSocket.OPEN) {
    socket.send(JSON.stringify({type: 'classify', selections: selections()}));
    return;
  }
  const res = await fetch('/api/predict', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({selections: selections()})
  });
  const data = await res.json();
  if (!res.ok) {
    render({type: 'error', data: {message: data.error}});
    return;
  }
  render({type: 'prediction', data: data});
}

async function loadContent() {
  const tips = await (await fetch('/api/content/tips')).json();
  document.getElementById('tips').innerHTML =
    tips.tips.map(t => '<li>' + t + '</li>').join('');
  const groups = await (await fetch('/api/content/groups')).json();
  document.getElementById('groups').innerHTML =
    groups.support_groups.map(g =>
      '<li><b>' + g.name + '</b>: ' + g.phone +
      ' | <a href="' + g.website + '">Website</a></li>').join('');
}

function connect() {
  socket = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') +
    location.host + '/api/ws/dashboard');
  socket.onmessage = (event) => {
    const msg = JSON.parse(event.data);
    if (msg.type === 'prediction' || msg.type === 'error') render(msg);
  };
}

loadCatalog().then(classify);
loadContent();
connect();
</script>
</body>
</html>
`
