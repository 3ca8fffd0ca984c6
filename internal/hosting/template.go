package hosting

// Template placeholders the injector recognizes exactly.
const (
	TitlePlaceholder = "__TITLE_PLACEHOLDER__"
	DataPlaceholder  = "__DASHBOARD_DATA_PLACEHOLDER__"
)

// canonicalTemplate is the pristine template content. Outside the brief
// publish window the on-disk template always equals this byte-for-byte:
// placeholders present, no live ciphertext. Restore rewrites it after
// every publish attempt.
const canonicalTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>__TITLE_PLACEHOLDER__</title>
    <script defer src="/__/firebase/12.6.0/firebase-app-compat.js"></script>
    <script defer src="/__/firebase/12.6.0/firebase-auth-compat.js"></script>
    <script defer src="/__/firebase/12.6.0/firebase-firestore-compat.js"></script>
    <script defer src="/__/firebase/init.js"></script>
    <style>
        body:not(.authenticated) { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: linear-gradient(135deg, #1a1a2e 0%, #16213e 50%, #0f3460 100%); min-height: 100vh; display: flex; align-items: center; justify-content: center; margin: 0; padding: 0; }
        body.authenticated { display: block; }
        #login-container { background: rgba(255, 255, 255, 0.95); padding: 48px 40px; border-radius: 16px; box-shadow: 0 25px 50px -12px rgba(0, 0, 0, 0.4); text-align: center; max-width: 400px; width: 90%; }
        #login-container h1 { color: #1a1a2e; font-size: 24px; font-weight: 600; margin-bottom: 8px; }
        #login-container .subtitle { color: #666; font-size: 14px; margin-bottom: 32px; }
        #sign-in-btn { display: inline-flex; align-items: center; gap: 12px; background: #4285f4; color: white; border: none; padding: 14px 28px; border-radius: 8px; font-size: 16px; font-weight: 500; cursor: pointer; }
        #login-container #error { color: #dc3545; font-size: 14px; margin-top: 20px; padding: 12px; background: #fff5f5; border-radius: 8px; display: none; }
        #sign-out-btn { display: none; margin-top: 16px; background: #6c757d; color: white; border: none; padding: 10px 20px; border-radius: 6px; font-size: 14px; cursor: pointer; }
        #login-container #loading { color: #666; font-size: 14px; margin-top: 20px; }
        .hidden { display: none !important; }
        #dashboard-container { display: none; width: 100%; min-height: 100vh; }
        body.authenticated #dashboard-container { display: block; }
        body.authenticated #login-container { display: none; }
    </style>
</head>
<body>
    <div id="login-container">
        <h1>__TITLE_PLACEHOLDER__</h1>
        <p class="subtitle">Sign in to view your expense dashboard</p>
        <button id="sign-in-btn" onclick="signIn()">Sign in with Google</button>
        <div id="error"></div>
        <button id="sign-out-btn" onclick="signOut()">Try a different account</button>
        <div id="loading" class="hidden">Checking authorization...</div>
    </div>
    <div id="dashboard-container"></div>
    <script id="dashboard-data" type="text/plain">__DASHBOARD_DATA_PLACEHOLDER__</script>
    <script>
        function hexToBytes(hex) {
            const bytes = new Uint8Array(hex.length / 2);
            for (let i = 0; i < hex.length; i += 2) {
                bytes[i / 2] = parseInt(hex.substr(i, 2), 16);
            }
            return bytes;
        }
        async function fetchKeyFromFirestore() {
            const db = firebase.firestore();
            const doc = await db.collection('config').doc('dashboard').get();
            if (!doc.exists) return null;
            return (doc.data() || {}).encryptionKey || null;
        }
        async function importKey(keyHex) {
            return await crypto.subtle.importKey('raw', hexToBytes(keyHex), { name: 'AES-GCM', length: 256 }, false, ['decrypt']);
        }
        async function decryptDashboard(encryptedHex, keyHex) {
            const encrypted = hexToBytes(encryptedHex);
            const nonce = encrypted.slice(0, 12);
            const ciphertext = encrypted.slice(12);
            const key = await importKey(keyHex);
            const decrypted = await crypto.subtle.decrypt({ name: 'AES-GCM', iv: nonce }, key, ciphertext);
            return new TextDecoder().decode(decrypted);
        }
        function signIn() {
            const provider = new firebase.auth.GoogleAuthProvider();
            firebase.auth().signInWithPopup(provider).catch(error => { showError('Sign-in failed: ' + error.message); });
        }
        function signOut() { firebase.auth().signOut(); }
        function showError(message, showSignOut = false) {
            const errorEl = document.getElementById('error');
            errorEl.textContent = message;
            errorEl.style.display = 'block';
            document.getElementById('loading').classList.add('hidden');
            document.getElementById('sign-out-btn').style.display = showSignOut ? 'inline-block' : 'none';
        }
        async function showDashboard() {
            const encryptedData = document.getElementById('dashboard-data').textContent.trim();
            if (!encryptedData || encryptedData.includes('PLACEHOLDER')) { showError('Dashboard content not available'); return; }
            try {
                const keyHex = await fetchKeyFromFirestore();
                if (!keyHex) { throw new Error('Could not retrieve encryption key'); }
                const dashboardHtml = await decryptDashboard(encryptedData, keyHex);
                const parser = new DOMParser();
                const doc = parser.parseFromString(dashboardHtml, 'text/html');
                doc.querySelectorAll('style').forEach(style => { document.head.appendChild(style.cloneNode(true)); });
                document.getElementById('dashboard-container').innerHTML = doc.body.innerHTML;
                const externalScripts = [];
                const inlineScripts = [];
                doc.querySelectorAll('script').forEach(script => {
                    if (script.src) { externalScripts.push(script.src); }
                    else if (script.textContent.trim()) { inlineScripts.push(script.textContent); }
                });
                function loadExternalScripts(urls, callback) {
                    if (urls.length === 0) { callback(); return; }
                    let loaded = 0;
                    urls.forEach(url => {
                        const s = document.createElement('script');
                        s.src = url;
                        s.onload = s.onerror = () => { loaded++; if (loaded === urls.length) callback(); };
                        document.body.appendChild(s);
                    });
                }
                loadExternalScripts(externalScripts, () => {
                    inlineScripts.forEach(code => { const s = document.createElement('script'); s.textContent = code; document.body.appendChild(s); });
                });
                document.body.classList.add('authenticated');
            } catch (e) {
                if (e && e.code === 'permission-denied') {
                    showError('Access denied. Your account is not authorized.', true);
                    return;
                }
                showError('Failed to decrypt dashboard: ' + (e?.message || String(e)));
            }
        }
        document.addEventListener('DOMContentLoaded', function() {
            setTimeout(() => {
                firebase.auth().onAuthStateChanged(async user => {
                    if (user) {
                        document.getElementById('loading').classList.remove('hidden');
                        document.getElementById('sign-in-btn').classList.add('hidden');
                        await showDashboard();
                    } else {
                        document.body.classList.remove('authenticated');
                        document.getElementById('login-container').classList.remove('hidden');
                        document.getElementById('sign-in-btn').classList.remove('hidden');
                        document.getElementById('loading').classList.add('hidden');
                        document.getElementById('error').style.display = 'none';
                        document.getElementById('sign-out-btn').style.display = 'none';
                    }
                });
            }, 500);
        });
    </script>
</body>
</html>
`

// CanonicalTemplate returns the pristine template content.
func CanonicalTemplate() string {
	return canonicalTemplate
}
