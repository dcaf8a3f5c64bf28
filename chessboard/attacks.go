package chessboard

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// inCheck reports whether the king of colour c stands on an attacked square.
// A board without that king is never in check.
func inCheck(b *Board, c Color) bool {
	sq, ok := b.Find(Piece{Type: King, Color: c})
	if !ok {
		return false
	}
	return attacked(b, sq, c.Other())
}

// attacked reports whether any piece of colour by attacks s.
func attacked(b *Board, s Square, by Color) bool {
	file, rank := s.File(), s.Rank()

	pawnRank := rank - 1
	if by == Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := b.At(NewSquare(file+df, pawnRank)); ok && p == (Piece{Type: Pawn, Color: by}) {
			return true
		}
	}

	if stepAttack(b, file, rank, knightOffsets, Piece{Type: Knight, Color: by}) ||
		stepAttack(b, file, rank, kingOffsets, Piece{Type: King, Color: by}) {
		return true
	}

	queen := Piece{Type: Queen, Color: by}
	return slideAttack(b, file, rank, diagonalDirs, Piece{Type: Bishop, Color: by}, queen) ||
		slideAttack(b, file, rank, straightDirs, Piece{Type: Rook, Color: by}, queen)
}

func stepAttack(b *Board, file, rank int, offsets [][2]int, attacker Piece) bool {
	for _, o := range offsets {
		if p, ok := b.At(NewSquare(file+o[0], rank+o[1])); ok && p == attacker {
			return true
		}
	}
	return false
}

func slideAttack(b *Board, file, rank int, dirs [][2]int, attacker1, attacker2 Piece) bool {
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for {
			sq := NewSquare(f, r)
			if sq == NoSquare {
				break
			}
			if p, ok := b.At(sq); ok {
				if p == attacker1 || p == attacker2 {
					return true
				}
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return false
}
