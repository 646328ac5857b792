// Package goose adapts the GooseEngineMG move generator to engine.Position.
package goose

import (
	"fmt"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/exp/slices"

	"chess-minimax/engine"
)

// Startpos is the standard initial position.
const Startpos = gm.FENStartPos

// Position wraps a goosemg board together with the undo stack and the hash
// history needed for repetition draws.
type Position struct {
	board   *gm.Board
	stack   []gm.MoveState
	history []uint64

	moveBuf []gm.Move
}

var _ engine.Position[gm.Move] = (*Position)(nil)

// New parses fen into a Position.
func New(fen string) (*Position, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return &Position{
		board:   b,
		history: []uint64{b.Hash()},
		moveBuf: make([]gm.Move, 0, 128),
	}, nil
}

// Board exposes the wrapped board. Callers must not mutate it.
func (p *Position) Board() *gm.Board { return p.board }

func (p *Position) FEN() string { return p.board.ToFEN() }

func (p *Position) LegalMoves() []gm.Move { return p.board.GenerateMoves() }

func (p *Position) LegalCaptures() []gm.Move { return p.board.GenerateCaptures() }

func (p *Position) Apply(m gm.Move) error {
	p.moveBuf = p.board.GenerateMovesInto(p.moveBuf[:0])
	if !slices.Contains(p.moveBuf, m) || !p.board.PushMove(m, &p.stack, &p.history) {
		return fmt.Errorf("illegal move %s in %s", MoveString(m), p.FEN())
	}
	return nil
}

func (p *Position) Undo(m gm.Move) {
	p.board.PopMove(&p.stack, &p.history)
}

func (p *Position) InCheck() bool { return p.board.InCheck(p.board.SideToMove()) }

func (p *Position) IsCheckmate() bool { return p.board.InCheckmate() }

// IsDraw covers stalemate, the fifty-move rule and threefold repetition.
func (p *Position) IsDraw() bool {
	return p.board.InStalemate() || p.board.IsDrawBy50() || p.board.IsDrawByRepetition(p.history)
}

func (p *Position) SideToMove() engine.Color { return engine.Color(p.board.SideToMove()) }

func (p *Position) PlyCount() int {
	ply := (p.board.FullmoveNumber() - 1) * 2
	if p.board.SideToMove() == gm.Black {
		ply++
	}
	return ply
}

func (p *Position) Occupancy(c engine.Color) uint64 {
	return p.board.Bitboards(gm.Color(c)).All
}

func (p *Position) Pieces(c engine.Color, t engine.PieceType) uint64 {
	bb := p.board.Bitboards(gm.Color(c))
	switch t {
	case engine.Pawn:
		return bb.Pawns
	case engine.Knight:
		return bb.Knights
	case engine.Bishop:
		return bb.Bishops
	case engine.Rook:
		return bb.Rooks
	case engine.Queen:
		return bb.Queens
	case engine.King:
		return bb.Kings
	}
	return 0
}

func (p *Position) PieceAt(sq int) (engine.Piece, bool) {
	pc := p.board.PieceAt(gm.Square(sq))
	if pc == gm.NoPiece {
		return engine.Piece{}, false
	}
	return engine.Piece{Type: engine.PieceType(pc.Type()), Color: engine.Color(pc.Color())}, true
}

func (p *Position) Describe(m gm.Move) engine.MoveInfo {
	return engine.MoveInfo{
		From:      int(m.From()),
		To:        int(m.To()),
		Piece:     engine.PieceType(m.MovedPiece().Type()),
		Capture:   m.CapturedPiece() != gm.NoPiece || m.Flags() == gm.FlagEnPassant,
		Promotion: m.PromotionPiece() != gm.NoPiece,
		Castle:    m.Flags() == gm.FlagCastle,
	}
}

func (p *Position) Hash() uint64 { return p.board.Hash() }

// ParseMove finds the legal move written as uci (e2e4, e7e8q).
func (p *Position) ParseMove(uci string) (gm.Move, error) {
	p.moveBuf = p.board.GenerateMovesInto(p.moveBuf[:0])
	for _, m := range p.moveBuf {
		if strings.EqualFold(m.String(), uci) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("move %s not found for position %s", uci, p.FEN())
}

// MoveString renders m in lower-case UCI notation.
func MoveString(m gm.Move) string { return strings.ToLower(m.String()) }
