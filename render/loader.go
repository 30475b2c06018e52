package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// Readiness tracks the lifecycle of one acquired image
type Readiness int

const (
	NotRequested Readiness = iota
	Loading
	Ready
	Failed
)

func (r Readiness) String() string {
	switch r {
	case NotRequested:
		return "not-requested"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// SlotKind identifies which of the two independent images a readiness
// transition belongs to
type SlotKind int

const (
	SlotBackground SlotKind = iota
	SlotQR
)

// ImageSource is a byte-level reference to an image: either inline encoded
// bytes or a URL to fetch. The zero value means no source at all.
type ImageSource struct {
	Inline []byte
	URL    string
}

// Absent reports whether there is no source to load. For the QR overlay this
// is a valid terminal state, not a failure.
func (s ImageSource) Absent() bool {
	return len(s.Inline) == 0 && s.URL == ""
}

// Fetcher retrieves raw image bytes from a URL
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// ErrBackgroundTimeout is reported when the background readiness poll gives
// up, so a dead decode surfaces as a Failed state instead of spinning
// forever.
var ErrBackgroundTimeout = errors.New("timed out waiting for background image to become ready")

type slot struct {
	readiness Readiness
	gen       uint64
	decoded   image.Image
	err       error
}

// Loader resolves the background template and the per-guest QR image into
// decoded, readiness-tracked images. The two lifecycles are fully
// independent: a QR failure never affects the background and vice versa.
//
// Every load request bumps the slot's generation counter; completions
// carrying a stale generation are discarded, so a decode that finishes after
// a newer request has started can never clobber current state.
type Loader struct {
	mu         sync.Mutex
	fetch      Fetcher
	notify     func(SlotKind)
	background slot
	qr         slot

	// Background readiness is observed by polling rather than assumed from
	// decode return: Ready requires a decoded image with nonzero intrinsic
	// width and height.
	graceDelay   time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
	fetchTimeout time.Duration
}

// NewLoader creates a Loader. notify is invoked (on a loader goroutine)
// after every readiness transition and must be safe for concurrent use.
func NewLoader(fetch Fetcher, notify func(SlotKind)) *Loader {
	if notify == nil {
		notify = func(SlotKind) {}
	}
	return &Loader{
		fetch:        fetch,
		notify:       notify,
		graceDelay:   50 * time.Millisecond,
		pollInterval: 200 * time.Millisecond,
		pollTimeout:  30 * time.Second,
		fetchTimeout: 10 * time.Second,
	}
}

// Background returns the current background state
func (l *Loader) Background() (Readiness, image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.background.readiness, l.background.decoded, l.background.err
}

// QR returns the current QR overlay state
func (l *Loader) QR() (Readiness, image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qr.readiness, l.qr.decoded, l.qr.err
}

// StartBackground begins decoding a new background template. Any in-flight
// load is superseded: its completion will be discarded by the generation
// check. Readiness is promoted to Ready by the poll loop, never directly by
// the decode goroutine.
func (l *Loader) StartBackground(encoded []byte) {
	l.mu.Lock()
	l.background.gen++
	gen := l.background.gen
	l.background.readiness = Loading
	l.background.decoded = nil
	l.background.err = nil
	l.mu.Unlock()

	go l.decodeBackground(gen, encoded)
	go l.pollBackground(gen)
}

func (l *Loader) decodeBackground(gen uint64, encoded []byte) {
	img, err := imaging.Decode(bytes.NewReader(encoded))

	l.mu.Lock()
	if l.background.gen != gen {
		// superseded while decoding
		l.mu.Unlock()
		return
	}
	if err != nil {
		l.background.readiness = Failed
		l.background.err = fmt.Errorf("failed to decode background image: %w", err)
		l.mu.Unlock()
		l.notify(SlotBackground)
		return
	}
	l.background.decoded = img
	l.mu.Unlock()
}

func (l *Loader) pollBackground(gen uint64) {
	time.Sleep(l.graceDelay)

	deadline := time.Now().Add(l.pollTimeout)
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		l.mu.Lock()
		if l.background.gen != gen || l.background.readiness != Loading {
			l.mu.Unlock()
			return
		}
		img := l.background.decoded
		if img != nil && img.Bounds().Dx() > 0 && img.Bounds().Dy() > 0 {
			l.background.readiness = Ready
			l.mu.Unlock()
			l.notify(SlotBackground)
			return
		}
		l.mu.Unlock()

		if time.Now().After(deadline) {
			l.mu.Lock()
			if l.background.gen == gen && l.background.readiness == Loading {
				l.background.readiness = Failed
				l.background.err = ErrBackgroundTimeout
				l.mu.Unlock()
				l.notify(SlotBackground)
				return
			}
			l.mu.Unlock()
			return
		}
		<-ticker.C
	}
}

// StartQR begins resolving the QR overlay for the current guest. Completion
// is event-driven (no polling) because each request is a fresh decode,
// independent of the background's lifecycle. An absent source resets the
// slot to NotRequested, which the compositor renders as the "NO QR"
// placeholder. Failures are terminal; there is no automatic retry.
func (l *Loader) StartQR(src ImageSource) {
	l.mu.Lock()
	l.qr.gen++
	gen := l.qr.gen
	l.qr.decoded = nil
	l.qr.err = nil
	if src.Absent() {
		l.qr.readiness = NotRequested
		l.mu.Unlock()
		l.notify(SlotQR)
		return
	}
	l.qr.readiness = Loading
	l.mu.Unlock()

	go l.loadQR(gen, src)
}

func (l *Loader) loadQR(gen uint64, src ImageSource) {
	data := src.Inline
	if len(data) == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), l.fetchTimeout)
		defer cancel()
		var err error
		data, err = l.fetch(ctx, src.URL)
		if err != nil {
			l.completeQR(gen, nil, fmt.Errorf("failed to fetch QR image: %w", err))
			return
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		l.completeQR(gen, nil, fmt.Errorf("failed to decode QR image: %w", err))
		return
	}
	l.completeQR(gen, img, nil)
}

func (l *Loader) completeQR(gen uint64, img image.Image, err error) {
	l.mu.Lock()
	if l.qr.gen != gen {
		l.mu.Unlock()
		return
	}
	if err != nil {
		l.qr.readiness = Failed
		l.qr.err = err
	} else {
		l.qr.readiness = Ready
		l.qr.decoded = img
	}
	l.mu.Unlock()
	l.notify(SlotQR)
}
