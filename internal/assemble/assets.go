package assemble

// staggerToken is substituted with the configured chart stagger interval
// before the runtime script is embedded.
const staggerToken = "__OFFDECK_STAGGER__"

// runtimeScript is the shared chart runtime. Per-slide scripts call
// OffdeckRuntime.register with their canvas entries; the runtime owns the
// whole instance lifecycle: staggered initialization when a slide is
// shown, capture of the constructed chart through a wrapping constructor,
// teardown when the slide is hidden, and a visible placeholder when a
// fragment fails.
const runtimeScript = `(function () {
  'use strict';

  var STAGGER_MS = ` + staggerToken + `;

  var registry = {};
  var instances = {};

  function realChart() {
    return typeof window.Chart === 'function' ? window.Chart : null;
  }

  function capturingChart(slot) {
    var Real = realChart();
    if (!Real) {
      return function () {};
    }
    function Captured(ctx, cfg) {
      var chart = new Real(ctx, cfg);
      slot.chart = chart;
      return chart;
    }
    Captured.prototype = Real.prototype;
    for (var key in Real) {
      if (Object.prototype.hasOwnProperty.call(Real, key)) {
        Captured[key] = Real[key];
      }
    }
    return Captured;
  }

  function clearCanvas(canvas) {
    var ctx = canvas.getContext && canvas.getContext('2d');
    if (!ctx) return;
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    if (ctx.reset) ctx.reset();
  }

  function drawPlaceholder(canvas) {
    var Real = realChart();
    if (Real) {
      try {
        return new Real(canvas.getContext('2d'), {
          type: 'bar',
          data: {
            labels: ['A', 'B', 'C'],
            datasets: [{
              label: 'placeholder',
              data: [10, 20, 30],
              backgroundColor: 'rgba(54, 162, 235, 0.5)'
            }]
          },
          options: { responsive: true, maintainAspectRatio: false }
        });
      } catch (e) {
        console.warn('placeholder chart failed:', e);
      }
    }
    try {
      var ctx = canvas.getContext('2d');
      ctx.fillStyle = '#f0f0f0';
      ctx.fillRect(0, 0, canvas.width, canvas.height);
      ctx.fillStyle = '#333';
      ctx.font = '16px sans-serif';
      ctx.textAlign = 'center';
      ctx.fillText('loading...', canvas.width / 2, canvas.height / 2);
    } catch (e) {
      console.warn('placeholder text failed:', e);
    }
    return null;
  }

  function initCanvas(slideId, entry) {
    var canvas = document.getElementById(entry.canvasId);
    if (!canvas) {
      console.warn('canvas missing: ' + entry.canvasId);
      return;
    }

    var Real = realChart();
    if (Real && Real.getChart) {
      var leftover = Real.getChart(canvas);
      if (leftover) {
        try { leftover.destroy(); } catch (e) { /* already gone */ }
      }
    }
    clearCanvas(canvas);

    var chart = null;
    if (entry.render) {
      var slot = {};
      try {
        entry.render(canvas, capturingChart(slot));
        chart = slot.chart || null;
      } catch (e) {
        console.error('chart init failed on ' + entry.canvasId + ':', e);
      }
      if (!chart && Real && Real.getChart) {
        chart = Real.getChart(canvas) || null;
      }
    }
    if (!chart) {
      chart = drawPlaceholder(canvas);
    }
    if (chart) {
      instances[slideId][entry.canvasId] = chart;
    }
  }

  window.OffdeckRuntime = {
    register: function (slideId, entries) {
      registry[slideId] = (registry[slideId] || []).concat(entries);
    },

    show: function (slideId) {
      this.hide(slideId);
      var entries = registry[slideId] || [];
      if (!instances[slideId]) {
        instances[slideId] = {};
      }
      entries.forEach(function (entry, index) {
        setTimeout(function () {
          initCanvas(slideId, entry);
        }, index * STAGGER_MS);
      });
    },

    hide: function (slideId) {
      var charts = instances[slideId];
      if (!charts) return;
      Object.keys(charts).forEach(function (canvasId) {
        var chart = charts[canvasId];
        try {
          if (chart && typeof chart.destroy === 'function') {
            chart.destroy();
          }
        } catch (e) {
          console.warn('chart teardown failed on ' + canvasId + ':', e);
        }
        var canvas = document.getElementById(canvasId);
        if (canvas) clearCanvas(canvas);
      });
      instances[slideId] = {};
    }
  };
})();`

// managerScript drives navigation: keyboard, touch, the counter and
// progress bar, fullscreen, and code highlighting on slide entry. It
// delegates all chart work to OffdeckRuntime.
const managerScript = `(function () {
  'use strict';

  function DeckManager() {
    this.slides = document.querySelectorAll('.deck-slide');
    this.current = 0;
    this.total = this.slides.length;
    this.transitioning = false;

    if (this.total > 0) {
      this.showSlide(0);
    }
    this.bindEvents();
    this.updateUI();
  }

  DeckManager.prototype.showSlide = function (index) {
    if (index < 0 || index >= this.total || this.transitioning) return;
    this.transitioning = true;

    if (this.current !== index) {
      var prev = this.slides[this.current];
      prev.style.display = 'none';
      window.OffdeckRuntime.hide(prev.id);
    }

    var slide = this.slides[index];
    slide.style.display = 'block';
    slide.scrollTop = 0;

    this.current = index;
    this.updateUI();

    var self = this;
    setTimeout(function () {
      window.OffdeckRuntime.show(slide.id);
      self.highlightCode(slide);
      self.transitioning = false;
    }, 200);
  };

  DeckManager.prototype.highlightCode = function (slide) {
    if (typeof hljs === 'undefined') return;
    var skip = ['badge', 'label', 'tag', 'btn', 'button', 'card', 'alert',
      'feature-highlight', 'highlight-text', 'highlight-box'];
    var blocks = slide.querySelectorAll('pre code, code[class*="language-"]');
    blocks.forEach(function (block) {
      var classes = Array.prototype.slice.call(block.classList);
      if (block.parentElement) {
        classes = classes.concat(
          Array.prototype.slice.call(block.parentElement.classList));
      }
      var excluded = skip.some(function (cls) {
        return classes.indexOf(cls) !== -1;
      });
      if (excluded || block.classList.contains('hljs-processed')) return;
      try {
        hljs.highlightElement(block);
        block.classList.add('hljs-processed');
      } catch (e) {
        console.warn('highlight failed:', e);
      }
    });
  };

  DeckManager.prototype.nextSlide = function () {
    this.showSlide(this.current + 1);
  };

  DeckManager.prototype.previousSlide = function () {
    this.showSlide(this.current - 1);
  };

  DeckManager.prototype.goToSlide = function (index) {
    this.showSlide(index);
  };

  DeckManager.prototype.updateUI = function () {
    var counter = document.getElementById('deck-counter');
    if (counter) {
      counter.textContent = (this.current + 1) + ' / ' + this.total;
    }
    var progress = document.getElementById('deck-progress');
    if (progress) {
      progress.style.width = ((this.current + 1) / this.total * 100) + '%';
    }
    var prev = document.getElementById('deck-prev');
    var next = document.getElementById('deck-next');
    if (prev) prev.disabled = this.current === 0;
    if (next) next.disabled = this.current === this.total - 1;
  };

  DeckManager.prototype.toggleFullscreen = function () {
    if (document.fullscreenElement) {
      document.exitFullscreen();
    } else {
      document.documentElement.requestFullscreen().catch(function (err) {
        console.warn('fullscreen failed:', err);
      });
    }
  };

  DeckManager.prototype.bindEvents = function () {
    var self = this;

    document.addEventListener('keydown', function (e) {
      if (self.transitioning) return;
      switch (e.key) {
        case 'ArrowRight':
        case ' ':
        case 'PageDown':
          e.preventDefault();
          self.nextSlide();
          break;
        case 'ArrowLeft':
        case 'PageUp':
          e.preventDefault();
          self.previousSlide();
          break;
        case 'Home':
          e.preventDefault();
          self.goToSlide(0);
          break;
        case 'End':
          e.preventDefault();
          self.goToSlide(self.total - 1);
          break;
        case 'F11':
          e.preventDefault();
          self.toggleFullscreen();
          break;
        case 'Escape':
          if (document.fullscreenElement) {
            document.exitFullscreen();
          }
          break;
      }
    });

    var touchX = 0;
    var touchY = 0;
    document.addEventListener('touchstart', function (e) {
      touchX = e.touches[0].clientX;
      touchY = e.touches[0].clientY;
    });
    document.addEventListener('touchend', function (e) {
      if (self.transitioning) return;
      var diffX = touchX - e.changedTouches[0].clientX;
      var diffY = touchY - e.changedTouches[0].clientY;
      if (Math.abs(diffX) > Math.abs(diffY) && Math.abs(diffX) > 50) {
        if (diffX > 0) {
          self.nextSlide();
        } else {
          self.previousSlide();
        }
      }
    });

    document.addEventListener('fullscreenchange', function () {
      var btn = document.getElementById('deck-fullscreen');
      var icon = btn && btn.querySelector('i');
      if (icon) {
        icon.className = document.fullscreenElement
          ? 'fas fa-compress'
          : 'fas fa-expand';
      }
    });
  };

  window.deckManager = null;

  document.addEventListener('DOMContentLoaded', function () {
    window.deckManager = new DeckManager();
  });

  window.addEventListener('error', function (e) {
    console.error('deck error:', e.error);
  });
})();`

// deckStyle carries the outer presentation chrome. Slide-local styles are
// scoped to their containers and never reach these rules.
const deckStyle = `* {
  box-sizing: border-box;
}

html, body {
  margin: 0;
  padding: 0;
  width: 100%;
  height: 100%;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto,
    'Helvetica Neue', Arial, sans-serif;
  background: #ffffff;
  overflow: hidden;
  -webkit-font-smoothing: antialiased;
}

.deck-slide {
  position: absolute;
  top: 0;
  left: 0;
  width: 100vw;
  height: 100vh;
  overflow-y: auto;
  overflow-x: hidden;
  background: #ffffff;
  display: none;
  scroll-behavior: smooth;
}

.slide-head {
  position: absolute;
  top: -9999px;
  left: -9999px;
}

.slide-body {
  width: 100%;
  min-height: 100vh;
  margin: 0;
  padding: 0;
}

.deck-slide::-webkit-scrollbar {
  width: 12px;
}

.deck-slide::-webkit-scrollbar-thumb {
  background: rgba(0, 0, 0, 0.3);
  border-radius: 6px;
}

#deck-controls {
  position: fixed;
  bottom: 20px;
  right: 20px;
  z-index: 10000;
  display: flex;
  align-items: center;
  gap: 10px;
  padding: 12px 18px;
  background: rgba(0, 0, 0, 0.8);
  color: white;
  border-radius: 25px;
  font-size: 14px;
  user-select: none;
  box-shadow: 0 4px 20px rgba(0, 0, 0, 0.3);
  backdrop-filter: blur(10px);
}

#deck-counter {
  margin-right: 10px;
  font-weight: 500;
}

#deck-controls button {
  display: flex;
  align-items: center;
  gap: 5px;
  padding: 8px 12px;
  background: transparent;
  border: 1px solid rgba(255, 255, 255, 0.3);
  color: white;
  border-radius: 6px;
  cursor: pointer;
  font-size: 12px;
  transition: background 0.2s ease;
}

#deck-controls button:hover {
  background: rgba(255, 255, 255, 0.1);
}

#deck-controls button:disabled {
  opacity: 0.5;
  cursor: default;
}

#deck-progress {
  position: fixed;
  top: 0;
  left: 0;
  height: 4px;
  background: linear-gradient(90deg, #667eea 0%, #764ba2 100%);
  z-index: 10001;
  transition: width 0.3s ease;
}

body:fullscreen #deck-controls {
  opacity: 0.7;
}

body:fullscreen #deck-controls:hover {
  opacity: 1;
}

@media (max-width: 768px) {
  #deck-controls {
    bottom: 10px;
    right: 10px;
    padding: 8px 12px;
    font-size: 12px;
    flex-wrap: wrap;
  }
}

@media print {
  .deck-slide {
    position: static !important;
    display: block !important;
    page-break-after: always;
  }
  #deck-controls,
  #deck-progress {
    display: none !important;
  }
}`

// navigationHTML is injected once after the slide containers.
const navigationHTML = `<div id="deck-controls">
  <span id="deck-counter">1 / 1</span>
  <button id="deck-home" onclick="deckManager.goToSlide(0)" title="First slide">
    <i class="fas fa-home"></i>
  </button>
  <button id="deck-prev" onclick="deckManager.previousSlide()" title="Previous slide">
    <i class="fas fa-chevron-left"></i> Prev
  </button>
  <button id="deck-next" onclick="deckManager.nextSlide()" title="Next slide">
    Next <i class="fas fa-chevron-right"></i>
  </button>
  <button id="deck-end" onclick="deckManager.goToSlide(deckManager.total - 1)" title="Last slide">
    <i class="fas fa-step-forward"></i>
  </button>
  <button id="deck-fullscreen" onclick="deckManager.toggleFullscreen()" title="Fullscreen">
    <i class="fas fa-expand"></i>
  </button>
</div>
<div id="deck-progress"></div>`
