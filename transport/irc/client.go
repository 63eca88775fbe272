// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package irc

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/whogrep/whogrep/search"
)

// Reply numerics the client dispatches on.
const (
	numericWelcome  = "001"
	numericEndOfWho = "315"
	numericWhoReply = "352"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Address is the server in host:port form.
	Address string
	// Nick is the nickname to register with.
	Nick string
	// TLS enables a TLS connection.
	TLS bool
	// TLSConfig overrides the default TLS configuration. Ignored
	// unless TLS is set.
	TLSConfig *tls.Config
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is a line-oriented IRC connection implementing
// search.Transport. One read loop goroutine serves all bindings.
type Client struct {
	conn   net.Conn
	nick   string
	logger *slog.Logger

	writeMu sync.Mutex

	bindMu      sync.Mutex
	nextBinding int
	bindings    map[int]binding

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

type binding struct {
	kind    search.EventKind
	handler func(raw string)
}

// Compile-time check: *Client implements search.Transport.
var _ search.Transport = (*Client)(nil)

// Dial connects to the server, registers the configured nick, and
// starts the read loop. Use WaitReady to block until the server
// accepts the registration.
func Dial(config ClientConfig) (*Client, error) {
	if config.Address == "" {
		return nil, fmt.Errorf("irc: Address is required")
	}
	if config.Nick == "" {
		return nil, fmt.Errorf("irc: Nick is required")
	}

	var conn net.Conn
	var err error
	if config.TLS {
		conn, err = tls.Dial("tcp", config.Address, config.TLSConfig)
	} else {
		conn, err = net.Dial("tcp", config.Address)
	}
	if err != nil {
		return nil, fmt.Errorf("irc: dialing %s: %w", config.Address, err)
	}

	client := NewClientConn(conn, config)
	if err := client.register(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// NewClientConn wraps an established connection and starts the read
// loop. It does not register a nick — Dial does that. Tests use this
// with net.Pipe.
func NewClientConn(conn net.Conn, config ClientConfig) *Client {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		conn:     conn,
		nick:     config.Nick,
		logger:   logger,
		bindings: make(map[int]binding),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	go client.readLoop()
	return client
}

// register sends the NICK/USER registration lines.
func (c *Client) register() error {
	if err := c.SendRawCommand("NICK " + c.nick); err != nil {
		return err
	}
	return c.SendRawCommand(fmt.Sprintf("USER %s 0 * :%s", c.nick, c.nick))
}

// WaitReady blocks until the server sends the 001 welcome, the
// connection closes, or ctx expires.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-c.done:
		return fmt.Errorf("irc: connection closed before welcome")
	case <-ctx.Done():
		return fmt.Errorf("irc: waiting for welcome: %w", ctx.Err())
	}
}

// JoinChannel joins a channel. The server's confirmation arrives
// asynchronously on the read loop.
func (c *Client) JoinChannel(channel string) error {
	return c.SendRawCommand("JOIN " + channel)
}

// SendRawCommand writes one raw protocol line to the server. The CRLF
// terminator is appended here; callers pass bare lines.
func (c *Client) SendRawCommand(line string) error {
	command := line
	if boundary := strings.IndexByte(line, ' '); boundary >= 0 {
		command = line[:boundary]
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("irc: writing %s: %w", command, err)
	}
	return nil
}

// BindEvent registers a handler for one event kind and returns its
// handle.
func (c *Client) BindEvent(kind search.EventKind, handler func(raw string)) (search.Binding, error) {
	if handler == nil {
		return nil, fmt.Errorf("irc: nil handler for %s", kind)
	}
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	c.nextBinding++
	c.bindings[c.nextBinding] = binding{kind: kind, handler: handler}
	return c.nextBinding, nil
}

// Unbind removes a previously registered handler. Unknown or
// already-removed handles are ignored.
func (c *Client) Unbind(handle search.Binding) {
	id, ok := handle.(int)
	if !ok {
		return
	}
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	delete(c.bindings, id)
}

// Close tears down the connection and unblocks the read loop.
// Idempotent.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// readLoop consumes server lines until the connection closes. All
// bound handlers run here, serialized in delivery order.
func (c *Client) readLoop() {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		c.handleLine(strings.TrimRight(scanner.Text(), "\r"))
	}

	select {
	case <-c.done:
		// Closed by the client side; the scanner error is expected.
	default:
		if err := scanner.Err(); err != nil {
			c.logger.Warn("irc read loop terminated", "error", err)
		}
	}
}

// handleLine parses one inbound line and dispatches it.
func (c *Client) handleLine(line string) {
	if line == "" {
		return
	}

	// PING may arrive at any time, including before registration
	// completes. Answer with the same token.
	if token, isPing := strings.CutPrefix(line, "PING"); isPing {
		if err := c.SendRawCommand("PONG" + token); err != nil {
			c.logger.Warn("irc pong failed", "error", err)
		}
		return
	}

	command, payload := splitMessage(line)
	switch command {
	case numericWelcome:
		c.readyOnce.Do(func() { close(c.ready) })
	case numericWhoReply:
		c.dispatch(search.EventRecord, payload)
	case numericEndOfWho:
		c.dispatch(search.EventEndOfList, payload)
	}
}

// dispatch invokes all handlers bound to kind, in binding order.
func (c *Client) dispatch(kind search.EventKind, payload string) {
	c.bindMu.Lock()
	handlers := make([]func(string), 0, len(c.bindings))
	for id := 1; id <= c.nextBinding; id++ {
		if bound, ok := c.bindings[id]; ok && bound.kind == kind {
			handlers = append(handlers, bound.handler)
		}
	}
	c.bindMu.Unlock()

	for _, handler := range handlers {
		handler(payload)
	}
}

// splitMessage splits an inbound line into its command token and the
// remainder. The optional ":prefix " is discarded — the dispatch keys
// on the command alone, and the enumeration payload format the search
// engine parses starts after the command.
func splitMessage(line string) (command, payload string) {
	if strings.HasPrefix(line, ":") {
		if boundary := strings.Index(line, " "); boundary >= 0 {
			line = line[boundary+1:]
		} else {
			return "", ""
		}
	}
	command, payload, _ = strings.Cut(line, " ")
	return command, payload
}
