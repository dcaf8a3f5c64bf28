package chessboard

import "log/slog"

// DefaultHighlightColor is used when Highlight is called without a colour.
const DefaultHighlightColor = "rgba(255, 255, 0, 0.5)"

// DefaultBoardSize is the side length, in pixels, of the default mapper.
const DefaultBoardSize = 400

type SessionOptions struct {
	Mode             ValidationMode
	FEN              string
	Logger           *slog.Logger
	PromotionPolicy  PromotionPolicy
	Mapper           CoordinateMapper
	OnMove           func(MovePayload)
	OnHighlight      func(Highlight)
	OnHighlightReset func()
	OnPromotion      func(p PendingPromotion, active bool)
}

var defaultSessionOptions = SessionOptions{
	Mode:            Strict,
	FEN:             StartFEN,
	PromotionPolicy: ReplacePending,
	Mapper:          NewCoordinateMapper(DefaultBoardSize, White),
}

type SessionOption func(*SessionOptions)

func WithMode(mode ValidationMode) SessionOption {
	return func(opts *SessionOptions) {
		opts.Mode = mode
	}
}

// WithFEN sets the position the session starts from and resets to.
func WithFEN(fen string) SessionOption {
	return func(opts *SessionOptions) {
		opts.FEN = fen
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(opts *SessionOptions) {
		opts.Logger = logger
	}
}

func WithPromotionPolicy(policy PromotionPolicy) SessionOption {
	return func(opts *SessionOptions) {
		opts.PromotionPolicy = policy
	}
}

func WithCoordinateMapper(mapper CoordinateMapper) SessionOption {
	return func(opts *SessionOptions) {
		opts.Mapper = mapper
	}
}

// WithMoveCallback registers the callback fired once per successful move.
func WithMoveCallback(fn func(MovePayload)) SessionOption {
	return func(opts *SessionOptions) {
		opts.OnMove = fn
	}
}

func WithHighlightListener(onHighlight func(Highlight), onReset func()) SessionOption {
	return func(opts *SessionOptions) {
		opts.OnHighlight = onHighlight
		opts.OnHighlightReset = onReset
	}
}

func WithPromotionListener(fn func(p PendingPromotion, active bool)) SessionOption {
	return func(opts *SessionOptions) {
		opts.OnPromotion = fn
	}
}
