// Command fpl-mcp serves the persisted output tables (teams, players,
// per-gameweek discrete stats) as read-only MCP tools.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ServerConfig struct {
	DataRoot string
}

type GameweekStatsArgs struct {
	GW int `json:"gw" jsonschema:"Gameweek (0 = latest)"`
}

type NoArgs struct{}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		dataRoot    = flag.String("data-root", "data", "root directory of scrape outputs")
		requireAuth = flag.Bool("require-auth", false, "require API key auth via FPL_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	cfg := ServerConfig{DataRoot: *dataRoot}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-ai-recommender",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 4)

	addTool(server, &registry, &mcp.Tool{
		Name:        "teams",
		Description: "Premier League team roster (one row per team)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return tableJSON(filepath.Join(cfg.DataRoot, "teams.csv"))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "players",
		Description: "Player master table: identity, team, position, current price/form",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return tableJSON(filepath.Join(cfg.DataRoot, "players.csv"))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "gameweek_stats",
		Description: "Discrete per-gameweek player stats (gw 0 = latest)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameweekStatsArgs) (*mcp.CallToolResult, any, error) {
		name := "player_stats_last_gw.csv"
		if args.GW > 0 {
			name = fmt.Sprintf("player_stats_gw%d.csv", args.GW)
		}
		return tableJSON(filepath.Join(cfg.DataRoot, name))
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("FPL_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		log.Fatal("FPL_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.Printf("MCP HTTP server listening on %s%s (data root %s)", *addr, *mcpPath, cfg.DataRoot)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// readTable loads a CSV output table as a list of header-keyed records.
func readTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("missing table (run cmd/scrape first): %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header", path)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tableJSON(path string) (*mcp.CallToolResult, any, error) {
	rows, err := readTable(path)
	if err != nil {
		return toolError(err), nil, nil
	}
	b, _ := json.MarshalIndent(map[string]any{"rows": rows, "count": len(rows)}, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
