package notnilchess

import (
	"fmt"
	"time"

	"github.com/notnil/chess"

	"chess-minimax/engine"
)

// Bot plays games driven by notnil/chess, in the shape of a ChessBot.
type Bot struct {
	Depth     int
	TimeLimit time.Duration

	engine *engine.Engine[Move]
}

func NewBot(depth int, opts engine.Options) *Bot {
	return &Bot{Depth: depth, engine: engine.New[Move](opts)}
}

func (b *Bot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Depth)
}

// BestMove returns the chosen move for the side to move in game, or nil if
// the game is over or the search failed.
func (b *Bot) BestMove(game *chess.Game) *chess.Move {
	if game == nil || game.Outcome() != chess.NoOutcome {
		return nil
	}
	pos := FromGame(game)
	m, err := b.engine.ChooseMove(pos, b.Depth, b.TimeLimit)
	if err != nil {
		return nil
	}
	return pos.lookup(m)
}
