// ABOUTME: Client side of the CLI: health checks and one-shot questions
// ABOUTME: Reads server settings from a TOML config under the XDG config dir

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"github.com/2389/docdesk/internal/gateway"
)

// defaultServerURL is used when no client config exists.
const defaultServerURL = "http://localhost:8080"

// askTimeout bounds how long `ask` waits for a turn to resolve.
const askTimeout = 30 * time.Second

// clientConfig is the TOML shape of the CLI client configuration.
type clientConfig struct {
	Server serverConfig `toml:"server"`
}

type serverConfig struct {
	URL string `toml:"url"`
}

// clientConfigPath resolves the client config location.
// Priority: DOCDESK_CONFIG env var > XDG_CONFIG_HOME/docdesk/client.toml
// > ~/.config/docdesk/client.toml.
func clientConfigPath() string {
	if path := os.Getenv("DOCDESK_CONFIG"); path != "" {
		return path
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "client.toml" // fallback
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "docdesk", "client.toml")
}

// loadClientConfig reads the client config, returning defaults when the
// file does not exist.
func loadClientConfig() (*clientConfig, error) {
	cfg := &clientConfig{Server: serverConfig{URL: defaultServerURL}}

	data, err := os.ReadFile(clientConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading client config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = defaultServerURL
	}
	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")
	return cfg, nil
}

func runHealth(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	serverFlag := fs.String("server", "", "server URL (overrides client config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	serverURL, err := resolveServerURL(*serverFlag)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		color.Red("unhealthy: %s returned %d", serverURL, resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	color.Green("ok: %s is healthy", serverURL)
	return nil
}

func runAsk(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	serverFlag := fs.String("server", "", "server URL (overrides client config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		return fmt.Errorf("usage: docdesk ask <question>")
	}

	serverURL, err := resolveServerURL(*serverFlag)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	turn, err := askOnce(ctx, serverURL, question)
	if err != nil {
		return err
	}

	printTurn(turn)
	return nil
}

// askOnce submits one question and follows the SSE stream until that
// turn resolves.
func askOnce(ctx context.Context, serverURL, question string) (*gateway.TurnView, error) {
	body, err := json.Marshal(gateway.AskRequest{Question: question})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitting question: %w", err)
	}
	var ask gateway.AskResponse
	err = json.NewDecoder(resp.Body).Decode(&ask)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("decoding ask response: %w", err)
	}
	if !ask.Accepted {
		return nil, fmt.Errorf("question was not accepted (blank or duplicate)")
	}

	return waitForTurn(ctx, serverURL, ask.SessionID, ask.TurnID)
}

// waitForTurn reads the session's SSE stream until the given turn
// resolves. The turn may already have resolved between submission and the
// stream opening, so the conversation snapshot is checked once first.
func waitForTurn(ctx context.Context, serverURL, sessionID, turnID string) (*gateway.TurnView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		serverURL+"/api/events?session_id="+sessionID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening event stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event stream returned %d", resp.StatusCode)
	}

	if turn, err := fetchResolvedTurn(ctx, serverURL, sessionID, turnID); err == nil && turn != nil {
		return turn, nil
	}

	type sseEvent struct {
		Type string           `json:"type"`
		Turn gateway.TurnView `json:"turn"`
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev sseEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			continue
		}
		if ev.Type == "resolved" && ev.Turn.ID == turnID {
			return &ev.Turn, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event stream: %w", err)
	}
	return nil, fmt.Errorf("event stream closed before the answer arrived")
}

// fetchResolvedTurn returns the turn if the conversation snapshot already
// shows it resolved, nil otherwise.
func fetchResolvedTurn(ctx context.Context, serverURL, sessionID, turnID string) (*gateway.TurnView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		serverURL+"/api/conversation?session_id="+sessionID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var conv gateway.ConversationResponse
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		return nil, err
	}
	for i := range conv.Turns {
		if conv.Turns[i].ID == turnID && conv.Turns[i].Status == "resolved" {
			return &conv.Turns[i], nil
		}
	}
	return nil, nil
}

// printTurn renders a resolved turn for the terminal.
func printTurn(turn *gateway.TurnView) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	bold.Println(turn.Question)
	fmt.Println()
	if turn.Response == nil {
		return
	}
	fmt.Println(turn.Response.Answer)
	if turn.Response.Reference != "" {
		fmt.Println()
		dim.Printf("Reference: %s\n", turn.Response.Reference)
	}
	if turn.Response.Notes != "" {
		dim.Printf("Note: %s\n", turn.Response.Notes)
	}
	if len(turn.Response.Sources) > 0 {
		fmt.Println()
		bold.Println("Sources:")
		for _, src := range turn.Response.Sources {
			fmt.Printf("  [%s] %s — %s\n", color.CyanString(src.Kind), src.Title, dim.Sprint(src.URL))
		}
	}
}

// resolveServerURL picks the server URL from the flag or client config.
func resolveServerURL(flagValue string) (string, error) {
	if flagValue != "" {
		return strings.TrimRight(flagValue, "/"), nil
	}
	cfg, err := loadClientConfig()
	if err != nil {
		return "", err
	}
	return cfg.Server.URL, nil
}
