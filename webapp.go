package main

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"text/template"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/walterschell/chessboard/chessboard"
)

const DefaultPort = 8080

//go:embed assets
var assets embed.FS
var templates fs.FS

func init() {
	templates, _ = fs.Sub(assets, "assets/templates")
}

var log = slog.Default().With("package", "main")

func stdoutLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

// Config is the runtime configuration assembled from command line flags.
type Config struct {
	Port        uint
	Mode        chessboard.ValidationMode
	FEN         string
	Orientation chessboard.Color
	Size        float64
}

func defaultConfig() Config {
	return Config{
		Port:        DefaultPort,
		Mode:        chessboard.Strict,
		FEN:         chessboard.StartFEN,
		Orientation: chessboard.White,
		Size:        chessboard.DefaultBoardSize,
	}
}

type Client struct {
	id          uuid.UUID
	conn        *websocket.Conn
	application *Application
	writeLock   sync.Mutex
}

func (c *Client) send(message serverMessage) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return c.conn.WriteJSON(message)
}

type Application struct {
	router      *mux.Router
	templates   *template.Template
	clients     map[*Client]interface{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader

	// sessionLock serialises every call into the board session, which is
	// not safe for concurrent use.
	sessionLock sync.Mutex
	session     *chessboard.MoveOrchestrator
	config      Config
}

// clientMessage is a request from a websocket client. Only the fields the
// message type needs are read.
type clientMessage struct {
	Type   string            `json:"type"`
	From   chessboard.Square `json:"from"`
	To     chessboard.Square `json:"to"`
	Square chessboard.Square `json:"square"`
	Piece  string            `json:"piece"`
	Color  string            `json:"color"`
	FEN    string            `json:"fen"`
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
}

type serverMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type promotionEvent struct {
	Active  bool                        `json:"active"`
	Pending chessboard.PendingPromotion `json:"pending"`
	Choices []chessboard.Piece          `json:"choices,omitempty"`
}

type selectionEvent struct {
	Square  chessboard.Square   `json:"square"`
	Targets []chessboard.Square `json:"targets"`
}

func NewApplication(config Config) (*Application, error) {
	templateParser := template.New("")
	templateParser.Delims("[[", "]]")
	result := &Application{
		router:    mux.NewRouter(),
		templates: template.Must(templateParser.ParseFS(templates, "*.html.gotmpl")),
		clients:   make(map[*Client]interface{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		config: config,
	}

	session, err := chessboard.NewSession(chessboard.NewChessEngine(),
		chessboard.WithMode(config.Mode),
		chessboard.WithFEN(config.FEN),
		chessboard.WithLogger(slog.Default().With("package", "chessboard")),
		chessboard.WithCoordinateMapper(chessboard.NewCoordinateMapper(config.Size, config.Orientation)),
		chessboard.WithMoveCallback(func(payload chessboard.MovePayload) {
			result.broadcast(serverMessage{Type: "move", Payload: payload})
		}),
		chessboard.WithHighlightListener(func(h chessboard.Highlight) {
			result.broadcast(serverMessage{Type: "highlight", Payload: h})
		}, func() {
			result.broadcast(serverMessage{Type: "resetHighlights"})
		}),
		chessboard.WithPromotionListener(func(p chessboard.PendingPromotion, active bool) {
			event := promotionEvent{Active: active, Pending: p}
			if active {
				event.Choices = result.session.PromotionChoices()
			}
			result.broadcast(serverMessage{Type: "promotion", Payload: event})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load start position: %w", err)
	}
	result.session = session
	session.Store().Subscribe(func(b chessboard.Board) {
		result.broadcast(serverMessage{Type: "board", Payload: b})
	})

	result.router.NotFoundHandler = stdoutLogger(http.HandlerFunc(notFoundHandler))
	result.router.Use(stdoutLogger)

	result.router.HandleFunc("/", result.indexHandler)
	result.router.HandleFunc("/ws", result.wsHandler)
	result.router.HandleFunc("/api/state", result.stateHandler).Methods(http.MethodGet)
	result.router.HandleFunc("/api/board", result.boardHandler).Methods(http.MethodGet)
	return result, nil
}

func (app *Application) indexHandler(w http.ResponseWriter, r *http.Request) {
	board := app.session.Store().Board()
	templateVars := struct {
		Title     string
		Mode      string
		Placement string
	}{
		Title:     "Chessboard",
		Mode:      app.config.Mode.String(),
		Placement: board.Placement(),
	}

	err := app.templates.ExecuteTemplate(w, "index.html.gotmpl", templateVars)
	if err != nil {
		log.Error("Error rendering template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error encoding response", "error", err)
	}
}

func (app *Application) stateHandler(w http.ResponseWriter, r *http.Request) {
	app.sessionLock.Lock()
	state, err := app.session.State()
	app.sessionLock.Unlock()
	if err != nil {
		writeJSON(w, http.StatusConflict, serverMessage{Type: "error", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (app *Application) boardHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.session.Store().Board())
}

func (application *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := application.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Error upgrading connection", "error", err)
		return
	}
	client := &Client{
		id:          uuid.New(),
		conn:        conn,
		application: application,
	}
	log.Info("New websocket connection", "client", client.id, "remote", conn.RemoteAddr())
	application.clientsLock.Lock()
	application.clients[client] = nil
	application.clientsLock.Unlock()

	application.sessionLock.Lock()
	welcome := application.snapshot(client)
	application.sessionLock.Unlock()
	if err := client.send(welcome); err != nil {
		log.Warn("Error sending welcome", "client", client.id, "error", err)
	}

	go func() {
		for {
			_, messageJson, err := client.conn.ReadMessage()
			if err != nil {
				log.Info("Websocket connection closed", "client", client.id, "error", err)
				application.clientsLock.Lock()
				delete(application.clients, client)
				application.clientsLock.Unlock()
				client.conn.Close()
				return
			}
			log.Debug("Received message", "client", client.id, "message", string(messageJson))
			message := clientMessage{
				From:   chessboard.NoSquare,
				To:     chessboard.NoSquare,
				Square: chessboard.NoSquare,
			}
			if err := json.Unmarshal(messageJson, &message); err != nil {
				application.reject(client, "", fmt.Errorf("invalid message: %w", err))
				continue
			}
			if err := application.handle(client, message); err != nil {
				application.reject(client, message.Type, err)
			}
		}
	}()
}

// reject reports a failed request back to the client that sent it.
func (app *Application) reject(client *Client, messageType string, err error) {
	log.Warn("Request failed", "client", client.id, "type", messageType, "error", err)
	if sendErr := client.send(serverMessage{Type: "error", Error: err.Error()}); sendErr != nil {
		log.Warn("Error sending message", "client", client.id, "error", sendErr)
	}
}

func (app *Application) snapshot(client *Client) serverMessage {
	state, _ := app.session.State()
	return serverMessage{Type: "welcome", Payload: struct {
		ID         uuid.UUID             `json:"id"`
		Mode       string                `json:"mode"`
		Board      chessboard.Board      `json:"board"`
		State      chessboard.GameStatus `json:"state"`
		Highlights []chessboard.Highlight `json:"highlights"`
	}{
		ID:         client.id,
		Mode:       app.config.Mode.String(),
		Board:      app.session.Store().Board(),
		State:      state,
		Highlights: app.session.Highlights(),
	}}
}

var errUnknownMessage = errors.New("unknown message type")

// handle runs one client request against the board session. Replies meant
// only for the requesting client are sent directly; everything else reaches
// clients through the session's broadcasts.
func (app *Application) handle(client *Client, message clientMessage) error {
	app.sessionLock.Lock()
	defer app.sessionLock.Unlock()

	switch message.Type {
	case "move":
		return app.session.Move(message.From, message.To)
	case "drop":
		return app.session.DropAt(message.From, chessboard.Point{X: message.X, Y: message.Y})
	case "promote":
		piece, err := chessboard.ParsePieceType(message.Piece)
		if err != nil {
			return err
		}
		return app.session.Resolve(piece)
	case "cancelPromotion":
		app.session.CancelPromotion()
		return nil
	case "undo":
		_, _, err := app.session.Undo()
		return err
	case "select":
		targets, err := app.session.Select(message.Square)
		if err != nil {
			return err
		}
		return client.send(serverMessage{Type: "selection", Payload: selectionEvent{Square: message.Square, Targets: targets}})
	case "highlight":
		app.session.Highlight(message.Square, message.Color)
		return nil
	case "resetHighlights":
		app.session.ResetAllHighlights()
		return nil
	case "reset":
		return app.session.ResetBoard(message.FEN)
	case "state":
		state, err := app.session.State()
		if err != nil {
			return err
		}
		return client.send(serverMessage{Type: "state", Payload: state})
	}
	return fmt.Errorf("%w: %q", errUnknownMessage, message.Type)
}

func (app *Application) broadcast(message serverMessage) {
	log.Debug("Broadcasting message", "type", message.Type)
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	for client := range app.clients {
		if err := client.send(message); err != nil {
			log.Warn("Error sending message", "client", client.id, "error", err)
		}
	}
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
