package genome

// trackJS mirrors the session behaviour in the browser when the SVG is used
// standalone: hover recolouring, brush zoom with the 350ms idle guard, and
// axis/grid rebuilds after each rescale.
const trackJS = `
    (function () {
      var svg = document.getElementById('__ID__');
      if (!svg) return;
      var W = +svg.dataset.width, H = +svg.dataset.height, MIN = +svg.dataset.min, MAX = +svg.dataset.max;
      var d0 = +svg.dataset.d0, d1 = +svg.dataset.d1, idle = null;
      var overlay = svg.querySelector('.brush .overlay'), sel = svg.querySelector('.brush .selection');
      function xs(v) { return (v - d0) / (d1 - d0) * W; }
      function inv(p) { return d0 + p / W * (d1 - d0); }
      function ticks(a, b, n) {
        var raw = (b - a) / n, step = Math.pow(10, Math.floor(Math.log10(raw))), e = raw / step;
        step *= e >= 7.07 ? 10 : e >= 3.16 ? 5 : e >= 1.41 ? 2 : 1;
        var out = [];
        for (var v = Math.ceil(a / step) * step; v <= b + step * 1e-9; v += step) out.push(+v.toPrecision(12));
        return out;
      }
      function rebuild(ax, size, labels) {
        if (!ax) return;
        ax.querySelectorAll('.tick').forEach(function (t) { t.remove(); });
        ticks(d0, d1, 10).forEach(function (v) {
          var g = document.createElementNS('http://www.w3.org/2000/svg', 'g');
          g.setAttribute('class', 'tick');
          g.setAttribute('transform', 'translate(' + xs(v) + ',0)');
          g.innerHTML = '<line stroke="currentColor" y2="' + size + '"/>' +
            (labels ? '<text fill="currentColor" y="9" dy="0.71em">' + v.toLocaleString('en-US') + '</text>' : '');
          ax.appendChild(g);
        });
      }
      function redraw() {
        svg.querySelectorAll('.gtf-rect').forEach(function (r) {
          r.setAttribute('x', xs(+r.dataset.start));
          r.setAttribute('width', xs(+r.dataset.end) - xs(+r.dataset.start));
        });
        svg.querySelectorAll('.gtf-text').forEach(function (t) {
          t.setAttribute('x', (xs(+t.dataset.start) + xs(+t.dataset.end)) / 2);
        });
        svg.querySelectorAll('.forward, .reverse').forEach(function (g) {
          g.setAttribute('transform', 'translate(' + xs(+g.dataset.at) + ',' + g.dataset.y + ')');
        });
        rebuild(document.getElementById('__ID__-x-axis'), 6, true);
        rebuild(document.getElementById('__ID__-x-grid'), -H, false);
      }
      svg.querySelectorAll('.gtf-rect').forEach(function (r) {
        r.addEventListener('mouseenter', function () { r.setAttribute('fill', '#3598DB'); });
        r.addEventListener('mouseleave', function () { r.setAttribute('fill', r.dataset.fill); });
      });
      var start = null;
      function px(evt) {
        var pt = svg.createSVGPoint(); pt.x = evt.clientX; pt.y = evt.clientY;
        return Math.max(0, Math.min(W, pt.matrixTransform(overlay.getScreenCTM().inverse()).x));
      }
      overlay.addEventListener('mousedown', function (evt) { start = px(evt); sel.setAttribute('display', 'none'); });
      svg.addEventListener('mousemove', function (evt) {
        if (start === null) return;
        var p = px(evt);
        sel.setAttribute('x', Math.min(start, p)); sel.setAttribute('width', Math.abs(p - start));
        sel.setAttribute('display', null);
      });
      svg.addEventListener('mouseup', function (evt) {
        if (start === null) return;
        var p = px(evt), a = Math.min(start, p), b = Math.max(start, p);
        start = null;
        sel.setAttribute('display', 'none');
        if (a === b) {
          if (!idle) { idle = setTimeout(function () { idle = null; }, 350); return; }
          d0 = MIN; d1 = MAX;
        } else {
          var n0 = inv(a), n1 = inv(b); d0 = n0; d1 = n1;
        }
        redraw();
      });
    })();`
