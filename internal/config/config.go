package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Server holds relay server configuration, loaded from the environment.
type Server struct {
	// Addr is the listen address for the HTTP/websocket server.
	Addr string `env:"INTERVIEWLY_ADDR" envDefault:":5000"`

	// AllowedOrigins restricts websocket upgrades to the listed Origin
	// headers. Empty means allow all (development).
	AllowedOrigins []string `env:"INTERVIEWLY_ALLOWED_ORIGINS" envSeparator:","`
}

// LoadServer parses server configuration from environment variables.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Default client configuration values.
const (
	DefaultServerURL = "ws://localhost:5000/ws"
	DefaultSTUN      = "stun:stun.l.google.com:19302"
)

// Client holds CLI client configuration.
type Client struct {
	// ServerURL is the relay's websocket endpoint.
	ServerURL string

	// Name is the display name attached to chat messages.
	Name string

	// ICE servers for peer negotiation.
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// ClientOptions carries CLI flag overrides.
type ClientOptions struct {
	ServerURL  string
	Name       string
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// LoadClient reads client configuration with the priority
// CLI flag > environment variable > default.
func LoadClient(opts ClientOptions) (*Client, error) {
	serverURL := firstOf(opts.ServerURL, os.Getenv("INTERVIEWLY_SERVER_URL"), DefaultServerURL)
	name := firstOf(opts.Name, os.Getenv("INTERVIEWLY_NAME"))
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("resolve display name: %w", err)
		}
		name = host
	}

	return &Client{
		ServerURL:  serverURL,
		Name:       name,
		STUNServer: firstOf(opts.STUNServer, os.Getenv("INTERVIEWLY_STUN_SERVER"), DefaultSTUN),
		TURNServer: firstOf(opts.TURNServer, os.Getenv("INTERVIEWLY_TURN_SERVER")),
		TURNUser:   firstOf(opts.TURNUser, os.Getenv("INTERVIEWLY_TURN_USERNAME")),
		TURNPass:   firstOf(opts.TURNPass, os.Getenv("INTERVIEWLY_TURN_PASSWORD")),
	}, nil
}

// GetSTUNServers returns STUN server URLs.
func (c *Client) GetSTUNServers() []string {
	return []string{c.STUNServer}
}

// GetTURNServers returns TURN server URLs if configured.
func (c *Client) GetTURNServers() []string {
	if c.TURNServer == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("%s:3478?transport=udp", c.TURNServer),
		fmt.Sprintf("%s:3478?transport=tcp", c.TURNServer),
	}
}

// GetTURNCredentials returns the TURN username and password.
func (c *Client) GetTURNCredentials() (string, string) {
	return c.TURNUser, c.TURNPass
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
