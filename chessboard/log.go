package chessboard

import "log/slog"

var log = slog.Default().With("package", "chessboard")
