package state

import (
	"crypto/rand"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/clock"
	"ghostgame/pkg/engine/logger"
	"ghostgame/pkg/engine/task"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
)

// NavStyle represents the navigation key style
type NavStyle int

// Navigation styles
const (
	NavStyleNSEW NavStyle = iota
	NavStyleVim
)

// PlayerID identifies the player actor in gate overlaps.
const PlayerID = "player"

// Player is the ghost the user controls.
type Player struct {
	ID string
}

// ActorID implements entities.Actor.
func (p *Player) ActorID() string { return p.ID }

// Role implements entities.Actor.
func (p *Player) Role() entities.Role { return entities.RolePlayer }

// LevelDefinition builds a level into a game. The game keeps it so the
// level can be rebuilt on reset.
type LevelDefinition interface {
	Title() string
	Build(g *Game) error
}

// Game represents the state of one play session
type Game struct {
	SessionID ulid.ULID

	Definition LevelDefinition

	Grid *world.Grid

	CurrentCell  *world.Cell
	PreviousCell *world.Cell // last cell the player stood on, used for push-back

	Player *Player

	Registry  *capability.Registry
	Board     *entities.Board
	Teleports *entities.TeleportNetwork
	Scheduler *task.Scheduler
	Clock     *clock.Clock
	Stopwatch clock.Stopwatch

	Checkpoint *world.Cell // respawn target for holes without their own

	Hints []string

	Messages []string

	NavStyle NavStyle

	ControlsEnabled bool
	PlayerAlpha     float64

	Finished bool
	Quit     bool

	Logger *slog.Logger
}

// NewGame creates a new game session. The registry lives as long as the
// session; level state is attached by setup.Build.
func NewGame(mode capability.Mode, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	id := ulid.MustNew(ulid.Now(), rand.Reader)
	log = logger.WithSession(log, id.String())

	return &Game{
		SessionID:       id,
		Player:          &Player{ID: PlayerID},
		Registry:        capability.NewRegistry(capability.WithMode(mode), capability.WithLogger(log)),
		Board:           entities.NewBoard(log),
		Teleports:       entities.NewTeleportNetwork(),
		Scheduler:       task.NewScheduler(log),
		Clock:           clock.New(),
		Messages:        make([]string, 0),
		ControlsEnabled: true,
		PlayerAlpha:     1,
		Logger:          log,
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// AddHint adds a hint to the game
func (g *Game) AddHint(hint string) {
	g.Hints = append(g.Hints, hint)
}

// ClearLevel drops everything that belongs to the current level. The
// registry and the session survive.
func (g *Game) ClearLevel() {
	g.Scheduler.CancelAll()
	g.Board.Close()
	g.Board = entities.NewBoard(g.Logger)
	g.Teleports = entities.NewTeleportNetwork()
	g.Grid = nil
	g.CurrentCell = nil
	g.PreviousCell = nil
	g.Checkpoint = nil
	g.Hints = nil
	g.Finished = false
	g.ControlsEnabled = true
	g.PlayerAlpha = 1
	g.Stopwatch = clock.Stopwatch{}
}
