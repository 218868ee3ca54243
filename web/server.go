package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/fray/webutils"
)

func HandlerJsonStatus(w http.ResponseWriter, r *http.Request) {
	s := CurrentSnapshot()
	if s == nil {
		webutils.WriteError(w, errors.Errorf("No snapshot published yet"))
		return
	}
	webutils.WriteJson(w, s)
}

func HandlerJsonViewports(w http.ResponseWriter, r *http.Request) {
	s := CurrentSnapshot()
	if s == nil {
		webutils.WriteError(w, errors.Errorf("No snapshot published yet"))
		return
	}
	webutils.WriteJson(w, map[string]interface{}{
		"canvas": s.Canvas,
		"leafs":  s.Leafs,
		"splits": s.Splits,
	})
}

func HandlerJsonAssets(w http.ResponseWriter, r *http.Request) {
	s := CurrentSnapshot()
	if s == nil {
		webutils.WriteError(w, errors.Errorf("No snapshot published yet"))
		return
	}
	webutils.WriteJson(w, map[string]interface{}{
		"pending":    s.Pending,
		"failures":   s.Failures,
		"integrated": s.Integrated,
		"workers":    s.Workers,
	})
}

func Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/status", HandlerJsonStatus)
	r.HandleFunc("/json/viewports", HandlerJsonViewports)
	r.HandleFunc("/json/assets", HandlerJsonAssets)
	r.HandleFunc("/ws/status", HandlerWsStatus)
	return r
}

// StartServer serves the debug endpoints in the background. Errors
// after startup only get logged; the engine keeps running without the
// debug view.
func StartServer(addr string) {
	h := handlers.RecoveryHandler()(Router())
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	go func() {
		if err := http.ListenAndServe(addr, h); err != nil {
			log.Printf("[web] Server stopped: %v", err)
		}
	}()
}
