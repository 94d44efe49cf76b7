// Package cli implements the interactive terminal client: login against the
// REST surface, channel chat over the websocket, and shared note access.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/Samayank/Renal-Tumor-Detection/internal/client/api"
	"github.com/Samayank/Renal-Tumor-Detection/internal/client/config"
	"github.com/Samayank/Renal-Tumor-Detection/internal/client/ws"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *api.Session
	reader  *bufio.Reader

	mu     sync.Mutex // guards stream; printEvents runs on its own goroutine
	stream *ws.Client
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.disconnect()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.session == nil {
		return "not logged in"
	}
	return a.session.Name
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// Login prompts for credentials, exchanges them for a token, and opens the
// realtime connection.
func (a *App) Login(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	session, err := a.api.Login(ctx, name, string(password))
	if err != nil {
		log.Printf("login failed: %v", err)
		return err
	}
	a.session = session

	stream, err := ws.Dial(ctx, a.config.ServerAddr, session.Token)
	if err != nil {
		log.Printf("realtime connection failed: %v", err)
		a.session = nil
		return err
	}
	a.setStream(stream)
	go a.printEvents(stream)

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", session.Name, session.Role))
	return nil
}

// Logout drops the session and closes the realtime connection.
func (a *App) Logout(ctx context.Context) error {
	a.disconnect()
	a.session = nil
	printlnFn("Logged out")
	return nil
}

// Users prints the roster.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%s  %s (%s)", u.ID, u.Name, u.Role))
	}
	return nil
}

// Notes prints all shared notes.
func (a *App) Notes(ctx context.Context) error {
	notes, err := a.api.Notes(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, n := range notes {
		printlnFn(fmt.Sprintf("[%s] %s — by %s: %s", n.Phase, n.Title, n.Author.Name, n.Content))
	}
	return nil
}

// AddNote prompts for the note fields and posts it.
func (a *App) AddNote(ctx context.Context) error {
	if a.session == nil {
		printlnFn("Login first")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}
	phase, err := GetSimpleText(a.reader, "Phase (empty for general)", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.api.CreateNote(ctx, a.session.ID, title, content, phase, nil)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created note %s", note.ID))
	return nil
}

// Join subscribes to a channel; its history is printed when the server
// replies.
func (a *App) Join(ctx context.Context, channel string) error {
	stream := a.currentStream()
	if stream == nil {
		printlnFn("Login first")
		return nil
	}
	if err := stream.Join(channel); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

// Send posts a chat message to a channel.
func (a *App) Send(ctx context.Context, channel, content string) error {
	stream := a.currentStream()
	if stream == nil {
		printlnFn("Login first")
		return nil
	}
	if err := stream.Send(channel, content); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

func (a *App) setStream(s *ws.Client) {
	a.mu.Lock()
	a.stream = s
	a.mu.Unlock()
}

func (a *App) currentStream() *ws.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stream
}

func (a *App) disconnect() {
	a.mu.Lock()
	stream := a.stream
	a.stream = nil
	a.mu.Unlock()

	if stream != nil {
		_ = stream.Close()
	}
}

// printEvents renders inbound frames until the connection drops.
func (a *App) printEvents(stream *ws.Client) {
	for evt := range stream.Events() {
		switch evt.Type {
		case "history":
			printlnFn(fmt.Sprintf("--- #%s history (%d messages) ---", evt.Channel, len(evt.Messages)))
			for _, m := range evt.Messages {
				printlnFn(formatMessage(m))
			}
		case "delivered":
			if evt.Message != nil {
				printlnFn(formatMessage(evt.Message))
			}
		}
	}
	printlnFn("Realtime connection closed")
}

func formatMessage(m *ws.Message) string {
	return fmt.Sprintf("#%s <%s> %s", m.Channel, m.Sender.Name, strings.TrimSpace(m.Content))
}
