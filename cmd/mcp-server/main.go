// Standalone HTTP MCP server for solvecheck.
//
// Exposes the verification tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/njchilds90/solvecheck/config"
	"github.com/njchilds90/solvecheck/symbolic"
	"github.com/njchilds90/solvecheck/tutor"
	"github.com/njchilds90/solvecheck/verify"
)

func main() {
	cfg := config.Load()
	port := flag.Int("port", 0, "Port to listen on (overrides SOLVECHECK_PORT)")
	flag.Parse()
	if *port != 0 {
		cfg.Addr = fmt.Sprintf(":%d", *port)
	}

	parser, err := symbolic.NewParser(cfg.ParseCacheSize)
	if err != nil {
		log.Fatalf("parser cache: %v", err)
	}
	analyzer := tutor.NewAnalyzer(
		tutor.WithVerifier(verify.New(verify.WithParser(parser), verify.WithTimeout(cfg.VerifyTimeout))),
		tutor.WithScanWorkers(cfg.ScanWorkers),
	)

	log.Printf("solvecheck MCP server listening on %s (verify timeout %s, scan workers %d)", cfg.Addr, cfg.VerifyTimeout, cfg.ScanWorkers)
	log.Printf("  POST /tool   execute a tool call")
	log.Printf("  GET  /schema tool schema for agent registration")
	log.Printf("  GET  /health health check")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(analyzer, parser, cfg.MaxBodyBytes),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newMux(analyzer *tutor.Analyzer, parser *symbolic.Parser, maxBodyBytes int64) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req tutor.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := analyzer.HandleToolCall(r.Context(), req)
		if resp.Error != "" {
			log.Printf("tool %s: %s", req.Tool, resp.Error)
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, tutor.MCPToolSpec())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"time":        time.Now().UTC().Format(time.RFC3339),
			"parse_cache": parser.Len(),
		})
	})

	return mux
}
