package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"
)

// Session owns one render surface and the state feeding it: the current
// position model, the selected guest and the two image lifecycles. Any
// change to that state invalidates the trigger, which schedules exactly one
// composite pass; readiness transitions from the loader do the same. The
// surface is only mutated under the session lock, and the loader's
// generation rule guarantees completions from superseded loads never reach
// it.
type Session struct {
	mu      sync.Mutex
	surface *image.NRGBA
	pos     Position

	guestName string
	cardClass string

	loader  *Loader
	trigger *Trigger

	composeErr error
	// terminal is set by a composite pass that observed both image
	// lifecycles in a final state (background Ready or Failed, QR not
	// Loading). AwaitRender blocks until it holds.
	terminal bool
	updates  chan struct{}
}

// NewSession creates a session with an empty surface and default positions
func NewSession(fetch Fetcher) *Session {
	s := &Session{
		surface: NewSurface(),
		pos:     DefaultPosition(),
		updates: make(chan struct{}, 1),
	}
	s.trigger = NewTrigger(30*time.Millisecond, s.composite)
	s.loader = NewLoader(fetch, func(SlotKind) {
		s.trigger.Invalidate()
	})
	return s
}

// SetTemplate switches the background template and starts its decode
func (s *Session) SetTemplate(encoded []byte) {
	s.mu.Lock()
	s.terminal = false
	s.mu.Unlock()
	s.loader.StartBackground(encoded)
	s.trigger.Invalidate()
}

// SetGuest selects the guest being composited. The QR source is resolved
// fresh for every guest; an absent source is a valid state rendered as the
// "NO QR" placeholder.
func (s *Session) SetGuest(name, cardClass string, qr ImageSource) {
	s.mu.Lock()
	s.guestName = name
	s.cardClass = cardClass
	s.terminal = false
	s.mu.Unlock()
	s.loader.StartQR(qr)
	s.trigger.Invalidate()
}

// SetPosition replaces the whole position model, clamping every coordinate
func (s *Session) SetPosition(pos Position) {
	s.mu.Lock()
	s.pos = pos.Clamp()
	s.terminal = false
	s.mu.Unlock()
	s.trigger.Invalidate()
}

// SetAnchor moves one overlay anchor
func (s *Session) SetAnchor(a Anchor, x, y float64) {
	s.mu.Lock()
	s.pos.SetAnchor(a, x, y)
	s.terminal = false
	s.mu.Unlock()
	s.trigger.Invalidate()
}

// SetVisibility toggles the name and card-class layers
func (s *Session) SetVisibility(showName, showClass bool) {
	s.mu.Lock()
	s.pos.ShowGuestName = showName
	s.pos.ShowCardClass = showClass
	s.terminal = false
	s.mu.Unlock()
	s.trigger.Invalidate()
}

// Position returns the current position model
func (s *Session) Position() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// composite runs one full pass. No background yet (or a failed one) clears
// the surface and draws nothing: the caller-visible "no design" state.
func (s *Session) composite() {
	bgState, bg, bgErr := s.loader.Background()
	qrState, qrImg, _ := s.loader.QR()

	s.mu.Lock()
	if bgState != Ready {
		draw.Draw(s.surface, s.surface.Bounds(), image.NewUniform(color.NRGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
		s.composeErr = bgErr
		s.terminal = bgState == Failed
	} else {
		s.composeErr = Compose(s.surface, bg, s.guestName, s.cardClass, s.pos, qrImg, qrState)
		s.terminal = qrState != Loading
	}
	s.mu.Unlock()

	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// AwaitRender blocks until a composite pass has observed terminal state for
// both images, then returns a copy of the surface. A failed or timed-out
// background surfaces as the error; a failed or absent QR does not, since
// those render as placeholders.
func (s *Session) AwaitRender(ctx context.Context) (*image.NRGBA, error) {
	for {
		s.mu.Lock()
		if s.terminal {
			if s.composeErr != nil {
				err := s.composeErr
				s.mu.Unlock()
				return nil, err
			}
			out := image.NewNRGBA(s.surface.Bounds())
			copy(out.Pix, s.surface.Pix)
			s.mu.Unlock()
			return out, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.updates:
		}
	}
}

// Snapshot returns a copy of the surface as-is, without waiting
func (s *Session) Snapshot() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewNRGBA(s.surface.Bounds())
	copy(out.Pix, s.surface.Pix)
	return out
}

// Close discards pending work
func (s *Session) Close() {
	s.trigger.Stop()
}
