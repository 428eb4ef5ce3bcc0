package web

// Single-page converter form driven by the JSON API.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Crypto Converter</title>
  <link href="https://fonts.googleapis.com/css2?family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root { --bg:#ffffff; --ink:#111111; --ink-soft:#9c9c9c; --panel:#f6f6f6; --ok:#1f9d55; --err:#d7263d; }
    * { box-sizing:border-box; }
    body { margin:0; min-height:100vh; background:var(--bg); color:var(--ink); font-family:'Space Mono',monospace; }
    header { background:#7D56F4; color:#fff; padding:1rem 2rem; font-weight:700; letter-spacing:.05em; }
    main { max-width:640px; margin:3rem auto; padding:2rem; background:var(--panel); border:3px solid var(--ink); box-shadow:12px 12px 0 rgba(0,0,0,.15); }
    label { display:block; font-size:.8rem; margin:1rem 0 .3rem; color:var(--ink-soft); text-transform:uppercase; }
    select, input, button { width:100%; padding:.7rem; font:inherit; border:2px solid var(--ink); background:#fff; }
    button { margin-top:1.5rem; background:var(--ink); color:#fff; cursor:pointer; }
    button:disabled { opacity:.5; cursor:wait; }
    #banner { display:none; border:2px solid var(--err); color:var(--err); padding:.7rem; margin-bottom:1rem; }
    #result { margin-top:1.5rem; font-size:1.2rem; font-weight:700; min-height:1.5rem; }
    #loading { text-align:center; padding:2rem; }
    #toast { position:fixed; top:1rem; right:1rem; padding:.8rem 1.2rem; color:#fff; display:none; }
  </style>
</head>
<body>
  <header>Crypto Converter</header>
  <main>
    <div id="loading">Loading cryptocurrencies...</div>
    <div id="form" style="display:none">
      <div id="banner"></div>
      <label for="asset">Cryptocurrency</label>
      <select id="asset"></select>
      <label for="fiat">Fiat Currency</label>
      <select id="fiat"></select>
      <label for="amount">Amount</label>
      <input id="amount" type="number" min="1" step="any" />
      <button id="convert">Convert</button>
      <div id="result"></div>
    </div>
  </main>
  <div id="toast"></div>
  <script>
    const $ = (id) => document.getElementById(id);
    let catalogSeq = 0;

    function toast(msg, ok) {
      const t = $('toast');
      t.textContent = msg;
      t.style.background = ok ? 'var(--ok)' : 'var(--err)';
      t.style.display = 'block';
      clearTimeout(t._timer);
      t._timer = setTimeout(() => { t.style.display = 'none'; }, 3000);
    }

    async function loadAssets(fiat) {
      const seq = ++catalogSeq;
      const banner = $('banner');
      try {
        const resp = await fetch('/api/assets?fiat=' + encodeURIComponent(fiat));
        const body = await resp.json();
        if (seq !== catalogSeq) return;
        if (!resp.ok) throw new Error(body.error);
        const select = $('asset');
        const previous = select.value;
        select.innerHTML = '';
        for (const a of body.assets) {
          const opt = document.createElement('option');
          opt.value = a.id;
          opt.textContent = a.name;
          select.appendChild(opt);
        }
        select.value = body.assets.some((a) => a.id === previous) ? previous : body.default;
        banner.style.display = 'none';
      } catch (e) {
        if (seq !== catalogSeq) return;
        $('asset').innerHTML = '';
        banner.textContent = 'Failed to load cryptocurrencies';
        banner.style.display = 'block';
      } finally {
        if (seq === catalogSeq) {
          $('loading').style.display = 'none';
          $('form').style.display = 'block';
        }
      }
    }

    async function convert() {
      const asset = $('asset').value;
      const amount = $('amount').value;
      if (!asset || !amount || isNaN(amount) || Number(amount) < 1) {
        toast('Please select a cryptocurrency and enter a valid amount (minimum 1)', false);
        return;
      }
      $('convert').disabled = true;
      try {
        const resp = await fetch('/api/convert', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ asset_id: asset, fiat: $('fiat').value, amount: amount }),
        });
        const body = await resp.json();
        if (!resp.ok) throw new Error(body.error);
        $('result').textContent = 'Converted Amount: ' + body.formatted;
        toast('Conversion successful', true);
      } catch (e) {
        toast('Conversion failed!', false);
      } finally {
        $('convert').disabled = false;
      }
    }

    async function init() {
      const fiats = await (await fetch('/api/fiats')).json();
      const select = $('fiat');
      for (const f of fiats) {
        const opt = document.createElement('option');
        opt.value = f;
        opt.textContent = f;
        select.appendChild(opt);
      }
      select.addEventListener('change', () => loadAssets(select.value));
      $('convert').addEventListener('click', convert);
      await loadAssets(select.value);
    }

    init();
  </script>
</body>
</html>
`
