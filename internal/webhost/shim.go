package webhost

import (
	"fmt"
	"regexp"
)

// shimSource replaces the page dialogs with synchronous host requests, exposes the
// bridge channel as window.webkit.messageHandlers[channel] and reports load completion.
// window.__host tells page script which channel and auto-paste hook the host uses.
const shimSource = `(function () {
  var hostId = %s;
  var channel = %s;
  var hook = %s;
  var base = '/hosts/' + encodeURIComponent(hostId);

  window.__host = { id: hostId, channel: channel, hook: hook };

  function ask(body) {
    var xhr = new XMLHttpRequest();
    try {
      xhr.open('POST', base + '/dialogs', false);
      xhr.setRequestHeader('Content-Type', 'application/json');
      xhr.send(JSON.stringify(body));
    } catch (e) {
      return null;
    }
    if (xhr.status !== 200) return null;
    try { return JSON.parse(xhr.responseText); } catch (e) { return null; }
  }

  function text(v) { return v === undefined || v === null ? '' : String(v); }

  window.alert = function (message) {
    ask({ kind: 'alert', message: text(message) });
  };
  window.confirm = function (message) {
    var r = ask({ kind: 'confirm', message: text(message) });
    return !!(r && r.result === true);
  };
  window.prompt = function (message, defaultText) {
    var r = ask({ kind: 'prompt', message: text(message), default_text: text(defaultText) });
    return r && typeof r.result === 'string' ? r.result : null;
  };

  if (channel) {
    window.webkit = window.webkit || {};
    window.webkit.messageHandlers = window.webkit.messageHandlers || {};
    window.webkit.messageHandlers[channel] = {
      postMessage: function (payload) {
        var xhr = new XMLHttpRequest();
        xhr.open('POST', base + '/messages/' + encodeURIComponent(channel), true);
        xhr.setRequestHeader('Content-Type', 'application/json');
        xhr.send(JSON.stringify(payload === undefined ? null : payload));
      }
    };
  }

  window.addEventListener('load', function () {
    var xhr = new XMLHttpRequest();
    xhr.open('POST', base + '/loaded', true);
    xhr.onload = function () {
      if (xhr.status === 200 && xhr.responseText) (0, eval)(xhr.responseText);
    };
    xhr.send();
  });
})();`

var (
	headTag = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	htmlTag = regexp.MustCompile(`(?i)<html(\s[^>]*)?>`)
)

// Shim returns the script injected into every hosted page.
func Shim(hostID, channel, hook string) string {
	return fmt.Sprintf(shimSource, JSStringLiteral(hostID), JSStringLiteral(channel), JSStringLiteral(hook))
}

// Inject places the shim before any page script: right after <head>, else after <html>,
// else at the very start of the document.
func Inject(page []byte, hostID, channel, hook string) []byte {
	script := []byte("<script>" + Shim(hostID, channel, hook) + "</script>")

	for _, tag := range []*regexp.Regexp{headTag, htmlTag} {
		if loc := tag.FindIndex(page); loc != nil {
			out := make([]byte, 0, len(page)+len(script))
			out = append(out, page[:loc[1]]...)
			out = append(out, script...)
			return append(out, page[loc[1]:]...)
		}
	}
	return append(script, page...)
}
