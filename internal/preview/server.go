package preview

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/recera/netsketch/internal/cache"
	"github.com/recera/netsketch/pkg/topology"
)

// Server serves a single exported diagram as a live-reloading HTML page. It
// watches the file with fsnotify and tells connected browsers to reload over
// a websocket whenever it changes.
type Server struct {
	diagramPath string
	opts        *RenderOptions
	renderCache *cache.Cache

	upgrader  websocket.Upgrader
	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewServer creates a preview server for the diagram at path. The render
// cache is optional; without one every request re-renders.
func NewServer(diagramPath string, opts *RenderOptions, renderCache *cache.Cache) *Server {
	return &Server{
		diagramPath: diagramPath,
		opts:        opts,
		renderCache: renderCache,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		wsClients: make(map[*websocket.Conn]bool),
		done:      make(chan struct{}),
	}
}

// ListenAndServe starts the watcher and blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	s.watcher = watcher
	// Watch the directory, not the file: editors and exporters replace files
	// by rename, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(s.diagramPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.diagramPath, err)
	}
	go s.watchLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/diagram.svg", s.handleSVG)
	mux.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("🌐 Preview server running at http://%s (watching %s)", addr, s.diagramPath)
	err = http.ListenAndServe(addr, mux)
	s.Close()
	return err
}

// Close stops the watcher and disconnects clients. Safe to call more than
// once; teardown runs however the server stops.
func (s *Server) Close() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.wsMutex.Lock()
	for client := range s.wsClients {
		client.Close()
		delete(s.wsClients, client)
	}
	s.wsMutex.Unlock()
}

// render loads the diagram and produces its SVG, going through the cache
// when one is configured. Returns the SVG and its cache key (used as ETag).
func (s *Server) render() ([]byte, string, error) {
	raw, err := os.ReadFile(s.diagramPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read diagram: %w", err)
	}

	o := s.opts.withDefaults()
	key := cache.Key(raw, []byte(fmt.Sprintf("%+v", o)))
	if s.renderCache != nil {
		if svg, ok := s.renderCache.Get(key); ok {
			return svg, key, nil
		}
	}

	doc, err := topology.ParseDocument(bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}
	svg := []byte(RenderSVG(doc, s.opts))
	if s.renderCache != nil {
		if err := s.renderCache.Put(key, svg); err != nil {
			log.Printf("Failed to cache render: %v", err)
		}
	}
	return svg, key, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, filepath.Base(s.diagramPath))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	svg, etag, err := s.render()
	if err != nil {
		log.Printf("Render error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", etag)
	w.Write(svg)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (s *Server) notifyReload() {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	for client := range s.wsClients {
		if err := client.WriteJSON(map[string]interface{}{"type": "RELOAD"}); err != nil {
			log.Printf("Failed to send reload to client: %v", err)
		}
	}
}

// watchLoop debounces filesystem events on the diagram file and broadcasts a
// reload after changes settle.
func (s *Server) watchLoop() {
	var timer *time.Timer
	target := filepath.Clean(s.diagramPath)
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				log.Printf("📄 %s changed, reloading clients...", filepath.Base(target))
				s.notifyReload()
			})
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)
		}
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>netsketch — %s</title>
<style>
  body { margin: 0; background: #0b0e14; display: flex; justify-content: center; }
  img { max-width: 100vw; max-height: 100vh; }
</style>
</head>
<body>
<img id="diagram" src="/diagram.svg">
<script>
  (function() {
    var ws = new WebSocket("ws://" + location.host + "/ws");
    ws.onmessage = function(ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "RELOAD") {
        document.getElementById("diagram").src = "/diagram.svg?t=" + Date.now();
      }
    };
    ws.onclose = function() { setTimeout(function() { location.reload(); }, 1000); };
  })();
</script>
</body>
</html>
`
