package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
}

// FindRunningInstance finds the socket path for a running instance.
// Returns the socket path and PID, or an error if not found. With several
// instances the most recently started one wins.
func FindRunningInstance() (string, int, error) {
	sockets, err := filepath.Glob(filepath.Join(socketDir(), socketPrefix+"*"+socketSuffix))
	if err != nil {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newestSocket string
	var newestTime time.Time
	for _, sock := range sockets {
		info, err := os.Stat(sock)
		if err != nil {
			continue
		}
		if newestSocket == "" || info.ModTime().After(newestTime) {
			newestTime = info.ModTime()
			newestSocket = sock
		}
	}
	if newestSocket == "" {
		return "", 0, fmt.Errorf("no running smartlist instance found")
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newestSocket), socketPrefix), socketSuffix)
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0 // Unknown PID
	}

	return newestSocket, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
	}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(responseTimeout + time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// SendReveal asks the instance to show exactly revealedIDs with focusedID
// highlighted. A nil revealedIDs reveals everything.
func (c *Client) SendReveal(focusedID string, revealedIDs []string) (*Response, error) {
	return c.Send(Message{Command: CommandReveal, FocusedID: focusedID, RevealedIDs: revealedIDs})
}

// SendRelease hands disclosure control back to the instance
func (c *Client) SendRelease() (*Response, error) {
	return c.Send(Message{Command: CommandRelease})
}

// SendStep advances (forward) or rewinds the disclosure by one step
func (c *Client) SendStep(forward bool) (*Response, error) {
	if forward {
		return c.Send(Message{Command: CommandNext})
	}
	return c.Send(Message{Command: CommandPrev})
}

// SendAddItem adds an item after target, or at the end when target is empty
func (c *Client) SendAddItem(text, target, status string) (*Response, error) {
	return c.Send(Message{
		Command: CommandAddItem,
		Text:    text,
		Target:  target,
		Status:  status,
	})
}
