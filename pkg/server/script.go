package server

import "strings"

// clientJS connects a session page to its events socket. It forwards hover,
// click and brush gestures and applies the patches each reply carries.
const clientJS = `
    (function () {
      var svg = document.getElementById('__NODE__');
      if (!svg) return;
      var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
      var ws = new WebSocket(proto + location.host + '/v1/sessions/__SESSION__/events');
      function send(type, index, selection) {
        if (ws.readyState !== 1) return;
        ws.send(JSON.stringify({ type: type, index: index, selection: selection || null }));
      }
      ws.onmessage = function (msg) {
        var reply = JSON.parse(msg.data);
        if (reply.error) { console.warn('genoviz:', reply.error); return; }
        (reply.patches || []).forEach(function (p) {
          var el = document.getElementById(p.target);
          if (!el) return;
          if (p.attr === 'outerHTML') el.outerHTML = p.value;
          else if (p.attr === 'innerHTML') el.innerHTML = p.value;
          else if (!(el instanceof SVGElement)) el.style[p.attr] = p.value;
          else el.setAttribute(p.attr, p.value);
        });
        if (reply.tooltip) {
          var tip = document.getElementById(reply.tooltip.id);
          if (tip) { tip.innerHTML = reply.tooltip.html; tip.style.opacity = reply.tooltip.opacity; }
        }
        if (reply.record) svg.dispatchEvent(new CustomEvent('genoviz:record', { detail: reply.record }));
      };
      svg.querySelectorAll('.gtf-rect, .pie-arc').forEach(function (el) {
        var i = +el.dataset.index;
        el.addEventListener('mouseenter', function () { send('hover', i); });
        el.addEventListener('mouseleave', function () { send('unhover', i); });
      });
      svg.querySelectorAll('.tsne-circle').forEach(function (el) {
        var i = +el.dataset.index;
        el.addEventListener('click', function () { send('click', i); });
        el.addEventListener('mouseout', function () { send('leave', i); });
      });
      svg.querySelectorAll('.violin').forEach(function (el, i) {
        el.addEventListener('click', function () { send('click', i); });
        el.addEventListener('mouseout', function () { send('leave', i); });
      });
      var overlay = svg.querySelector('.brush .overlay'), start = null;
      if (!overlay) return;
      function px(evt) {
        var pt = svg.createSVGPoint(); pt.x = evt.clientX; pt.y = evt.clientY;
        return Math.max(0, Math.min(+svg.dataset.width, pt.matrixTransform(overlay.getScreenCTM().inverse()).x));
      }
      overlay.addEventListener('mousedown', function (evt) { start = px(evt); });
      svg.addEventListener('mouseup', function (evt) {
        if (start === null) return;
        var p = px(evt), a = Math.min(start, p), b = Math.max(start, p);
        start = null;
        send('brush', 0, a === b ? null : [a, b]);
      });
    })();`

func sessionScript(sessionID, nodeID string) string {
	return strings.NewReplacer("__SESSION__", sessionID, "__NODE__", nodeID).Replace(clientJS)
}
