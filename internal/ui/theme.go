package ui

const themeStorageKey = "accessdiff-theme"

const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function resolve(mode){
    if(mode==='light'||mode==='dark'){ return mode; }
    return media.matches?'dark':'light';
  }
  var stored='auto';
  try { stored=localStorage.getItem('` + themeStorageKey + `')||'auto'; } catch (_) {}
  root.setAttribute('data-theme', resolve(stored));
  window.__accessDiffTheme=resolve;
})();`

const themeBehaviorScript = `(function(){
  var root=document.documentElement;
  var toggle=document.getElementById('theme-toggle');
  if(!toggle){ return; }
  function sync(){
    var dark=root.getAttribute('data-theme')==='dark';
    var label=dark?'Switch to light theme':'Switch to dark theme';
    toggle.textContent=dark?'Light':'Dark';
    toggle.setAttribute('aria-label', label);
    toggle.setAttribute('title', label);
  }
  toggle.addEventListener('click', function(){
    var next=root.getAttribute('data-theme')==='dark'?'light':'dark';
    root.setAttribute('data-theme', next);
    try { localStorage.setItem('` + themeStorageKey + `', next); } catch (_) {}
    sync();
  });
  sync();
})();`
