// Package notnilchess adapts github.com/notnil/chess to engine.Position.
//
// notnil positions are immutable: Apply pushes the successor returned by
// Position.Update and Undo pops it again.
package notnilchess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/notnil/chess"

	"chess-minimax/engine"
)

const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const fiftyMoveLimit = 100

// Move identifies a move independently of the position it was generated in.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

var promoLetters = map[chess.PieceType]string{
	chess.Queen:  "q",
	chess.Rook:   "r",
	chess.Bishop: "b",
	chess.Knight: "n",
}

func (m Move) String() string {
	return m.From.String() + m.To.String() + promoLetters[m.Promo]
}

func fromChess(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

type Position struct {
	stack   []*chess.Position
	history []uint64
}

var _ engine.Position[Move] = (*Position)(nil)

func New(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return FromGame(chess.NewGame(opt)), nil
}

// FromGame starts from the game's current position and seeds the repetition
// history with every position the game went through.
func FromGame(g *chess.Game) *Position {
	p := &Position{stack: []*chess.Position{g.Position()}}
	for _, pos := range g.Positions() {
		p.history = append(p.history, hashOf(pos))
	}
	if len(p.history) == 0 {
		p.history = append(p.history, hashOf(g.Position()))
	}
	return p
}

func hashOf(pos *chess.Position) uint64 {
	h := pos.Hash()
	return xxhash.Sum64(h[:])
}

func (p *Position) current() *chess.Position { return p.stack[len(p.stack)-1] }

func (p *Position) FEN() string { return p.current().String() }

func (p *Position) LegalMoves() []Move {
	valid := p.current().ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = fromChess(m)
	}
	return moves
}

func (p *Position) LegalCaptures() []Move {
	var moves []Move
	for _, m := range p.current().ValidMoves() {
		if m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant) {
			moves = append(moves, fromChess(m))
		}
	}
	return moves
}

func (p *Position) lookup(m Move) *chess.Move {
	for _, cm := range p.current().ValidMoves() {
		if cm.S1() == m.From && cm.S2() == m.To && cm.Promo() == m.Promo {
			return cm
		}
	}
	return nil
}

func (p *Position) Apply(m Move) error {
	cm := p.lookup(m)
	if cm == nil {
		return fmt.Errorf("illegal move %s in %s", m, p.FEN())
	}
	next := p.current().Update(cm)
	p.stack = append(p.stack, next)
	p.history = append(p.history, hashOf(next))
	return nil
}

func (p *Position) Undo(m Move) {
	if len(p.stack) == 1 {
		panic("notnilchess: Undo with no applied move")
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.history = p.history[:len(p.history)-1]
}

func (p *Position) InCheck() bool {
	pos := p.current()
	us := pos.Turn()
	king := p.Pieces(toColor(us), engine.King)
	if king == 0 {
		return false
	}
	return attacked(pos.Board(), chess.Square(lowestSquare(king)), us.Other())
}

func (p *Position) IsCheckmate() bool { return p.current().Status() == chess.Checkmate }

func (p *Position) IsDraw() bool {
	if p.current().Status() == chess.Stalemate {
		return true
	}
	return p.halfmoveClock() >= fiftyMoveLimit || p.repetitions() >= 3
}

func (p *Position) repetitions() int {
	current := p.history[len(p.history)-1]
	var count int
	for _, h := range p.history {
		if h == current {
			count++
		}
	}
	return count
}

// fenField reads one of the numeric FEN counters; notnil does not export them.
func (p *Position) fenField(i int, fallback int) int {
	fields := strings.Fields(p.FEN())
	if len(fields) <= i {
		return fallback
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return fallback
	}
	return n
}

func (p *Position) halfmoveClock() int { return p.fenField(4, 0) }

func (p *Position) SideToMove() engine.Color { return toColor(p.current().Turn()) }

func (p *Position) PlyCount() int {
	ply := (p.fenField(5, 1) - 1) * 2
	if p.current().Turn() == chess.Black {
		ply++
	}
	return ply
}

func toColor(c chess.Color) engine.Color {
	if c == chess.Black {
		return engine.Black
	}
	return engine.White
}

func toChessColor(c engine.Color) chess.Color {
	if c == engine.Black {
		return chess.Black
	}
	return chess.White
}

var pieceTypes = map[chess.PieceType]engine.PieceType{
	chess.Pawn:   engine.Pawn,
	chess.Knight: engine.Knight,
	chess.Bishop: engine.Bishop,
	chess.Rook:   engine.Rook,
	chess.Queen:  engine.Queen,
	chess.King:   engine.King,
}

func (p *Position) Occupancy(c engine.Color) uint64 {
	var bb uint64
	want := toChessColor(c)
	for sq, pc := range p.current().Board().SquareMap() {
		if pc.Color() == want {
			bb |= 1 << uint(sq)
		}
	}
	return bb
}

func (p *Position) Pieces(c engine.Color, t engine.PieceType) uint64 {
	var bb uint64
	want := toChessColor(c)
	for sq, pc := range p.current().Board().SquareMap() {
		if pc.Color() == want && pieceTypes[pc.Type()] == t {
			bb |= 1 << uint(sq)
		}
	}
	return bb
}

func (p *Position) PieceAt(sq int) (engine.Piece, bool) {
	pc := p.current().Board().Piece(chess.Square(sq))
	if pc == chess.NoPiece {
		return engine.Piece{}, false
	}
	return engine.Piece{Type: pieceTypes[pc.Type()], Color: toColor(pc.Color())}, true
}

func (p *Position) Describe(m Move) engine.MoveInfo {
	info := engine.MoveInfo{
		From:      int(m.From),
		To:        int(m.To),
		Promotion: m.Promo != chess.NoPieceType,
	}
	if pc := p.current().Board().Piece(m.From); pc != chess.NoPiece {
		info.Piece = pieceTypes[pc.Type()]
	}
	if cm := p.lookup(m); cm != nil {
		info.Capture = cm.HasTag(chess.Capture) || cm.HasTag(chess.EnPassant)
		info.Castle = cm.HasTag(chess.KingSideCastle) || cm.HasTag(chess.QueenSideCastle)
	}
	return info
}

func (p *Position) Hash() uint64 { return hashOf(p.current()) }

func (p *Position) ParseMove(uci string) (Move, error) {
	for _, m := range p.LegalMoves() {
		if m.String() == strings.ToLower(uci) {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("move %s not found for position %s", uci, p.FEN())
}
