package session

// interactiveElementsJS lists visible interactive elements in document order
// together with a structural locator for each of them.
const interactiveElementsJS = `() => {
  const maxDepth = 8;

  const isVisible = (el) => {
    const rect = el.getBoundingClientRect();
    const style = getComputedStyle(el);
    return rect.width > 0 && rect.height > 0 &&
      style.visibility !== 'hidden' && style.display !== 'none';
  };

  const locatorOf = (el) => {
    if (!(el instanceof Element)) return '';
    const path = [];
    while (el && el.nodeType === Node.ELEMENT_NODE && path.length < maxDepth) {
      const tag = el.nodeName.toLowerCase();
      if (el.id) {
        path.unshift(tag + '#' + CSS.escape(el.id));
        break;
      }
      let nth = 1;
      let sib = el;
      while ((sib = sib.previousElementSibling)) {
        if (sib.nodeName.toLowerCase() === tag) nth++;
      }
      path.unshift(tag + ':nth-of-type(' + nth + ')');
      el = el.parentElement;
    }
    return path.join(' > ');
  };

  const nodes = document.querySelectorAll([
    'a[href]',
    'button',
    'input:not([type="hidden"]):not([disabled])',
    'textarea:not([disabled])',
    'select:not([disabled])',
    '[role="button"]',
    '[contenteditable=""]',
    '[contenteditable="true"]',
    '[tabindex]:not([tabindex="-1"])',
  ].join(','));

  const seen = new Set();
  const items = [];
  for (const el of nodes) {
    if (!isVisible(el)) continue;
    const locator = locatorOf(el);
    if (!locator || seen.has(locator)) continue;
    seen.add(locator);
    items.push({
      locator,
      tag: el.tagName.toLowerCase(),
      type: el.getAttribute('type') || '',
      role: el.getAttribute('role') || '',
      placeholder: el.getAttribute('placeholder') || '',
      title: el.getAttribute('title') || '',
      ariaLabel: el.getAttribute('aria-label') || '',
      text: (el.innerText || el.value || '').trim(),
    });
  }
  return items;
}`

const scrollByJS = `(dy) => window.scrollBy(0, dy)`

const scrollViewportJS = `(dir) => window.scrollBy(0, dir * window.innerHeight)`

// scrollToTextJS scrolls to the first visible text node containing needle,
// compared case-insensitively.
const scrollToTextJS = `(needle) => {
  const n = String(needle).toLowerCase();
  const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT, {
    acceptNode(node) {
      if (!node.nodeValue || !node.parentElement) return NodeFilter.FILTER_REJECT;
      if (!node.nodeValue.toLowerCase().includes(n)) return NodeFilter.FILTER_SKIP;
      const el = node.parentElement;
      const rect = el.getBoundingClientRect();
      const style = getComputedStyle(el);
      if (rect.width <= 0 || rect.height <= 0) return NodeFilter.FILTER_SKIP;
      if (style.visibility === 'hidden' || style.display === 'none') return NodeFilter.FILTER_SKIP;
      return NodeFilter.FILTER_ACCEPT;
    }
  });
  const node = walker.nextNode();
  if (!node) return false;
  node.parentElement.scrollIntoView({behavior: 'instant', block: 'center', inline: 'nearest'});
  return true;
}`

const dropdownOptionsJS = `(sel) => {
  const el = document.querySelector(sel);
  if (!el || el.tagName.toLowerCase() !== 'select') return null;
  return Array.from(el.options).map((opt, i) => ({idx: i, text: opt.text, value: opt.value}));
}`

const optionValueForTextJS = `(sel, want) => {
  const el = document.querySelector(sel);
  if (!el || el.tagName.toLowerCase() !== 'select') return null;
  const match = Array.from(el.options).find(o => (o.text || '').trim() === String(want).trim());
  return match ? match.value : null;
}`

const outerHTMLJS = `() => document.documentElement.outerHTML`
