package wall

import (
	"bytes"
	"math"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/errors"
)

// scriptedSource replays fixed draws: Float64 cycles through floats and
// Shuffle applies swaps in order, ignoring n.
type scriptedSource struct {
	floats []float64
	next   int
	swaps  [][2]int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[s.next%len(s.floats)]
	s.next++
	return f
}

func (s *scriptedSource) Shuffle(n int, swap func(i, j int)) {
	for _, p := range s.swaps {
		swap(p[0], p[1])
	}
}

type recordingTarget struct {
	style string
	calls int
}

func (t *recordingTarget) SetStyle(style string) {
	t.style = style
	t.calls++
}

func newTargets(n int) ([]*recordingTarget, []Target) {
	recs := make([]*recordingTarget, n)
	for i := range recs {
		recs[i] = &recordingTarget{}
	}
	return recs, Targets(recs)
}

var stylePattern = regexp.MustCompile(`^transform:rotate\(-?[0-9.]+deg\);top:-?[0-9.]+px;left:-?[0-9.]+px;$`)

func checkLayout(t *testing.T, l Layout, n int) {
	t.Helper()
	want := min(n, len(l.Slots))
	if len(l.Placements) != want {
		t.Fatalf("placements = %d, want %d", len(l.Placements), want)
	}
	used := make(map[int]bool)
	for i, p := range l.Placements {
		if p.Index != i {
			t.Errorf("placement %d has index %d", i, p.Index)
		}
		if used[p.Slot] {
			t.Errorf("slot %d assigned twice", p.Slot)
		}
		used[p.Slot] = true

		slot, ok := l.SlotOf(p)
		if !ok {
			t.Fatalf("placement %d references slot %d out of range", i, p.Slot)
		}
		if !DefaultRotation.Contains(p.Rotation) {
			t.Errorf("rotation %v outside %v", p.Rotation, DefaultRotation)
		}
		if dx := p.X - slot.X; !DefaultJitterX.Contains(dx) {
			t.Errorf("x jitter %v outside %v", dx, DefaultJitterX)
		}
		if dy := p.Y - slot.Y; !DefaultJitterY.Contains(dy) {
			t.Errorf("y jitter %v outside %v", dy, DefaultJitterY)
		}
		if !stylePattern.MatchString(p.Style()) {
			t.Errorf("style %q does not match %s", p.Style(), stylePattern)
		}
	}
}

func TestPlaceProperties(t *testing.T) {
	for _, n := range []int{1, 2, 7, 27, 28} {
		for seed := uint64(1); seed <= 20; seed++ {
			r := New(WithSource(NewSource(seed)))
			l, err := r.Place(n)
			if err != nil {
				t.Fatalf("Place(%d) seed %d: %v", n, seed, err)
			}
			checkLayout(t, l, n)
		}
	}
}

func TestPlaceAllSlotsUsed(t *testing.T) {
	r := New(WithSource(NewSource(7)))
	l, err := r.Place(28)
	if err != nil {
		t.Fatalf("Place(28): %v", err)
	}

	seen := make([]bool, 28)
	for _, p := range l.Placements {
		seen[p.Slot] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("slot %d never used", i)
		}
	}
	if l.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", l.Skipped)
	}
}

func TestPlaceSlotZeroReachable(t *testing.T) {
	found := false
	for seed := uint64(0); seed < 1000 && !found; seed++ {
		l, err := New(WithSource(NewSource(seed))).Place(1)
		if err != nil {
			t.Fatal(err)
		}
		found = l.Placements[0].Slot == 0
	}
	if !found {
		t.Error("slot 0 was never chosen for a single target over 1000 seeds")
	}
}

func TestApplyScriptedSlot(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}, swaps: [][2]int{{0, 5}}}
	recs, targets := newTargets(1)

	l, err := New(WithSource(src)).Apply(targets)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	p := l.Placements[0]
	if p.Slot != 5 {
		t.Fatalf("Slot = %d, want 5", p.Slot)
	}
	if p.Rotation != 0 || p.X != 380 || p.Y != 375 {
		t.Errorf("placement = %+v, want rotation 0 at (380, 375)", p)
	}

	want := "transform:rotate(0deg);top:375px;left:380px;"
	if recs[0].style != want {
		t.Errorf("style = %q, want %q", recs[0].style, want)
	}
}

func TestApplyDrawOrder(t *testing.T) {
	// rotation, x jitter, y jitter per target
	src := &scriptedSource{floats: []float64{0, 0.25, 1, 0.75, 0.5, 0}}
	l, err := New(WithSource(src)).Place(2)
	if err != nil {
		t.Fatal(err)
	}

	first, second := l.Placements[0], l.Placements[1]
	if first.Slot != 0 || second.Slot != 1 {
		t.Fatalf("slots = %d, %d, want identity 0, 1", first.Slot, second.Slot)
	}
	if first.Rotation != -10 || first.X != 50-15 || first.Y != 50+50 {
		t.Errorf("first = %+v", first)
	}
	if second.Rotation != 5 || second.X != 50 || second.Y != 360-20 {
		t.Errorf("second = %+v", second)
	}
}

func TestApplyZeroTargets(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	l, err := New(WithLogger(logger)).Apply(nil)
	if err != nil {
		t.Fatalf("Apply(nil) error = %v", err)
	}
	if !l.Empty() {
		t.Errorf("placements = %d, want 0", len(l.Placements))
	}
	if !strings.Contains(buf.String(), "no targets") {
		t.Errorf("log output %q should mention no targets", buf.String())
	}
}

func TestApplyOverflowSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	recs, targets := newTargets(30)

	l, err := New(WithSource(NewSource(3)), WithLogger(logger)).Apply(targets)
	if err != nil {
		t.Fatalf("Apply error = %v", err)
	}
	checkLayout(t, l, 30)
	if l.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", l.Skipped)
	}
	for i, rec := range recs {
		wantCalls := 1
		if i >= 28 {
			wantCalls = 0
		}
		if rec.calls != wantCalls {
			t.Errorf("target %d styled %d times, want %d", i, rec.calls, wantCalls)
		}
	}
	if !strings.Contains(buf.String(), "exceed") {
		t.Errorf("expected overflow warning, got %q", buf.String())
	}
}

func TestApplyOverflowError(t *testing.T) {
	recs, targets := newTargets(29)

	_, err := New(WithOverflow(OverflowError)).Apply(targets)
	if !errors.Is(err, errors.ErrCodeTooManyTargets) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeTooManyTargets)
	}
	if !errors.IsConfiguration(err) {
		t.Error("overflow should be a configuration error")
	}
	for i, rec := range recs {
		if rec.calls != 0 {
			t.Errorf("target %d was styled despite error", i)
		}
	}
}

func TestPlaceInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		n    int
		code errors.Code
	}{
		{"no slots", []Option{WithSlots(nil)}, 1, errors.ErrCodeInvalidConfig},
		{"inverted rotation", []Option{WithRotation(Range{Min: 10, Max: -10})}, 1, errors.ErrCodeInvalidConfig},
		{"inverted jitter", []Option{WithJitter(DefaultJitterX, Range{Min: 50, Max: -20})}, 1, errors.ErrCodeInvalidConfig},
		{"negative count", nil, -1, errors.ErrCodeInvalidInput},
		{"infinite rotation", []Option{WithRotation(Range{Min: math.Inf(-1), Max: math.Inf(1)})}, 1, errors.ErrCodeInvalidConfig},
		{"infinite jitter", []Option{WithJitter(Range{Min: math.Inf(1), Max: math.Inf(1)}, DefaultJitterY)}, 1, errors.ErrCodeInvalidConfig},
		{"nan slot", []Option{WithSlots([]Slot{{X: math.NaN(), Y: 0}})}, 1, errors.ErrCodeInvalidConfig},
		{"infinite slot", []Option{WithSlots([]Slot{{X: 0, Y: math.Inf(1)}})}, 1, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...).Place(tt.n)
			if !errors.Is(err, tt.code) {
				t.Errorf("Place(%d) error = %v, want code %s", tt.n, err, tt.code)
			}
		})
	}
}

func TestPlaceNoSlotsNoTargets(t *testing.T) {
	l, err := New(WithSlots(nil)).Place(0)
	if err != nil {
		t.Fatalf("Place(0) with no slots error = %v", err)
	}
	if !l.Empty() {
		t.Error("expected empty layout")
	}
}

func TestPlaceCustomSlots(t *testing.T) {
	slots := []Slot{{X: 0, Y: 0}, {X: 100, Y: 100}}
	r := New(WithSlots(slots), WithRotation(Range{}), WithJitter(Range{}, Range{}), WithSource(NewSource(1)))

	l, err := r.Place(2)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range l.Placements {
		s := slots[p.Slot]
		if p.X != s.X || p.Y != s.Y || p.Rotation != 0 {
			t.Errorf("placement %+v should sit exactly on slot %+v", p, s)
		}
	}

	slots[0].X = 999
	if r.Slots()[0].X == 999 {
		t.Error("WithSlots should copy its input")
	}
}

func TestPlaceReproducible(t *testing.T) {
	a, err := New(WithSource(NewSource(42))).Place(10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(WithSource(NewSource(42))).Place(10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Fatalf("placement %d differs for the same seed: %+v vs %+v", i, a.Placements[i], b.Placements[i])
		}
	}
}

func TestPlaceRepeatedRunsValid(t *testing.T) {
	r := New(WithSource(NewSource(5)))
	first, err := r.Place(28)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Place(28)
	if err != nil {
		t.Fatal(err)
	}
	checkLayout(t, first, 28)
	checkLayout(t, second, 28)

	same := true
	for i := range first.Placements {
		if first.Placements[i] != second.Placements[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two consecutive runs produced identical layouts")
	}
}

func TestPlaceConcurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if _, err := r.Place(28); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseOverflowPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OverflowPolicy
		wantErr bool
	}{
		{"", OverflowSkip, false},
		{"skip", OverflowSkip, false},
		{"error", OverflowError, false},
		{"panic", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOverflowPolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOverflowPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOverflowPolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && tt.in != "" && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestTargetFunc(t *testing.T) {
	var got string
	_, err := New(WithSource(NewSource(1))).Apply([]Target{TargetFunc(func(s string) { got = s })})
	if err != nil {
		t.Fatal(err)
	}
	if !stylePattern.MatchString(got) {
		t.Errorf("TargetFunc received %q", got)
	}
}
