package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	serverURL := os.Getenv("AUGUR_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}

	proxy := NewStdioProxy(serverURL)
	if err := proxy.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "augur-mcp: %v\n", err)
		os.Exit(1)
	}
}

// StdioProxy bridges a stdio MCP client onto the streamable HTTP endpoint
// of a running augur-server. Desktop clients speak newline-delimited
// JSON-RPC over stdin/stdout; the server only listens on HTTP, so each
// line is relayed as a POST to /mcp.
type StdioProxy struct {
	endpoint   string
	httpClient *http.Client
}

// NewStdioProxy points the proxy at an augur-server base URL.
func NewStdioProxy(baseURL string) *StdioProxy {
	return &StdioProxy{
		endpoint:   baseURL + "/mcp",
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Run relays newline-delimited JSON-RPC messages from r until EOF. A failed
// relay becomes a JSON-RPC error response carrying the request's id, so the
// client never hangs waiting for a reply.
func (p *StdioProxy) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Tool responses carrying chart payloads can run to megabytes
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	out := bufio.NewWriter(w)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp, err := p.relay(line)
		if err != nil {
			resp = jsonRPCError(extractID(line), -32000, err.Error())
		}
		out.Write(resp)
		out.WriteByte('\n')
		out.Flush()
	}
	return scanner.Err()
}

// relay posts one JSON-RPC message to the server and returns the raw
// response body.
func (p *StdioProxy) relay(msg []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(msg))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	return bytes.TrimSpace(body), nil
}

// extractID recovers the request id so an error response can reference it.
func extractID(msg []byte) json.RawMessage {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil || probe.ID == nil {
		return json.RawMessage("null")
	}
	return probe.ID
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   rpcError        `json:"error"`
}

// jsonRPCError builds a JSON-RPC 2.0 error response.
func jsonRPCError(id json.RawMessage, code int, message string) []byte {
	data, _ := json.Marshal(rpcErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   rpcError{Code: code, Message: message},
	})
	return data
}
