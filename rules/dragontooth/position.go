// Package dragontooth adapts github.com/dylhunn/dragontoothmg to engine.Position.
package dragontooth

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"chess-minimax/engine"
)

const Startpos = dragontoothmg.Startpos

const fiftyMoveLimit = 100

// Position keeps the undo closures returned by Board.Apply on a stack, so
// Undo always reverts the most recent move.
type Position struct {
	board   dragontoothmg.Board
	undos   []func()
	history []uint64
}

var _ engine.Position[dragontoothmg.Move] = (*Position)(nil)

func New(fen string) (*Position, error) {
	b, err := parseFen(fen)
	if err != nil {
		return nil, err
	}
	return &Position{board: b, history: []uint64{b.Hash()}}, nil
}

// parseFen recovers from the panics dragontoothmg raises on malformed input.
func parseFen(fen string) (b dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse fen %q: %v", fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func (p *Position) FEN() string { return p.board.ToFen() }

func (p *Position) LegalMoves() []dragontoothmg.Move { return p.board.GenerateLegalMoves() }

func (p *Position) LegalCaptures() []dragontoothmg.Move {
	moves := p.board.GenerateLegalMoves()
	captures := moves[:0]
	for _, m := range moves {
		if p.isCapture(m) {
			captures = append(captures, m)
		}
	}
	return captures
}

func (p *Position) Apply(m dragontoothmg.Move) error {
	if !slices.Contains(p.board.GenerateLegalMoves(), m) {
		return fmt.Errorf("illegal move %s in %s", m.String(), p.FEN())
	}
	p.undos = append(p.undos, p.board.Apply(m))
	p.history = append(p.history, p.board.Hash())
	return nil
}

func (p *Position) Undo(m dragontoothmg.Move) {
	n := len(p.undos)
	if n == 0 {
		panic("dragontooth: Undo with no applied move")
	}
	undo := p.undos[n-1]
	p.undos = p.undos[:n-1]
	p.history = p.history[:len(p.history)-1]
	undo()
}

func (p *Position) InCheck() bool { return p.board.OurKingInCheck() }

func (p *Position) IsCheckmate() bool {
	return p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) IsDraw() bool {
	if !p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0 {
		return true
	}
	return int(p.board.Halfmoveclock) >= fiftyMoveLimit || p.repetitions() >= 3
}

// repetitions counts how often the current position occurred, itself included.
func (p *Position) repetitions() int {
	current := p.board.Hash()
	var count int
	for _, h := range p.history {
		if h == current {
			count++
		}
	}
	return count
}

func (p *Position) SideToMove() engine.Color {
	if p.board.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (p *Position) PlyCount() int {
	ply := (int(p.board.Fullmoveno) - 1) * 2
	if !p.board.Wtomove {
		ply++
	}
	return ply
}

func (p *Position) bitboards(c engine.Color) *dragontoothmg.Bitboards {
	if c == engine.White {
		return &p.board.White
	}
	return &p.board.Black
}

func (p *Position) Occupancy(c engine.Color) uint64 { return p.bitboards(c).All }

func (p *Position) Pieces(c engine.Color, t engine.PieceType) uint64 {
	bb := p.bitboards(c)
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
	for _, c := range []engine.Color{engine.White, engine.Black} {
		if t := pieceTypeAt(uint8(sq), p.bitboards(c)); t != engine.None {
			return engine.Piece{Type: t, Color: c}, true
		}
	}
	return engine.Piece{}, false
}

func pieceTypeAt(sq uint8, bb *dragontoothmg.Bitboards) engine.PieceType {
	mask := uint64(1) << sq
	switch {
	case bb.Pawns&mask != 0:
		return engine.Pawn
	case bb.Knights&mask != 0:
		return engine.Knight
	case bb.Bishops&mask != 0:
		return engine.Bishop
	case bb.Rooks&mask != 0:
		return engine.Rook
	case bb.Queens&mask != 0:
		return engine.Queen
	case bb.Kings&mask != 0:
		return engine.King
	}
	return engine.None
}

func (p *Position) Describe(m dragontoothmg.Move) engine.MoveInfo {
	from, to := m.From(), m.To()
	piece := pieceTypeAt(from, p.bitboards(p.SideToMove()))
	return engine.MoveInfo{
		From:      int(from),
		To:        int(to),
		Piece:     piece,
		Capture:   p.isCapture(m),
		Promotion: m.Promote() != dragontoothmg.Nothing,
		Castle:    piece == engine.King && (int(to)-int(from) == 2 || int(from)-int(to) == 2),
	}
}

// isCapture also catches en passant, where the target square is empty.
func (p *Position) isCapture(m dragontoothmg.Move) bool {
	if dragontoothmg.IsCapture(m, &p.board) {
		return true
	}
	from, to := m.From(), m.To()
	return pieceTypeAt(from, p.bitboards(p.SideToMove())) == engine.Pawn && from%8 != to%8
}

func (p *Position) Hash() uint64 { return p.board.Hash() }

func (p *Position) ParseMove(uci string) (dragontoothmg.Move, error) {
	for _, m := range p.board.GenerateLegalMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return 0, fmt.Errorf("move %s not found for position %s", uci, p.FEN())
}
