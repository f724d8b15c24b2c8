package zstd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bitvault-io/zstdcore/internal/le"
)

// cursor is the observable state of a reader, for diffing.
type cursor struct {
	Bits         uint64
	Current      int
	BitsConsumed uint32
	Overflow     bool
}

func snapshot(b *BitReader) cursor {
	return cursor{Bits: b.Bits, Current: b.Current, BitsConsumed: b.BitsConsumed, Overflow: b.Overflow}
}

func TestNewBitReaderEmpty(t *testing.T) {
	for _, test := range []struct {
		name       string
		in         []byte
		start, end int
	}{
		{name: "nil", in: nil, start: 0, end: 0},
		{name: "empty-range", in: []byte{1, 2, 3}, start: 2, end: 2},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBitReader(test.in, test.start, test.end)
			var malformed *MalformedInputError
			if !errors.As(err, &malformed) {
				t.Fatalf("got %v, want MalformedInputError", err)
			}
			if malformed.Offset != int64(test.start) {
				t.Errorf("offset = %d, want %d", malformed.Offset, test.start)
			}
		})
	}
}

func TestNewBitReaderMissingEndMark(t *testing.T) {
	_, err := NewBitReader([]byte{0x12, 0x34, 0x00}, 0, 3)
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedInputError", err)
	}
	if malformed.Offset != 3 {
		t.Errorf("offset = %d, want 3", malformed.Offset)
	}
}

func TestNewBitReaderBadIndexes(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*IndexOutOfRangeError); !ok {
			t.Fatalf("recovered %v, want IndexOutOfRangeError", r)
		}
	}()
	NewBitReader([]byte{1, 2}, 0, 3)
	t.Fatal("no panic")
}

func TestNewBitReaderNormal(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x88}
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	// 0x88 has its end mark at bit 7, so 56 high bits of the window count
	// as consumed.
	want := cursor{Bits: 0x8807060504030201, Current: 0, BitsConsumed: 56}
	if diff := cmp.Diff(want, snapshot(br)); diff != "" {
		t.Errorf("cursor mismatch (-want +got):\n%s", diff)
	}
	if br.EndOfStream() {
		t.Error("end of stream immediately after init")
	}
}

func TestNewBitReaderNormalWindowFromTail(t *testing.T) {
	in := make([]byte, 20)
	for i := range in {
		in[i] = byte(i + 1)
	}
	in[19] = 0x40
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := br.Bits, le.Load64(in, 12); got != want {
		t.Errorf("window = %#x, want last 8 bytes %#x", got, want)
	}
	if br.Current != 12 {
		t.Errorf("current = %d, want 12", br.Current)
	}
	if br.BitsConsumed != 57 { // end mark of 0x40 at bit 6
		t.Errorf("consumed = %d, want 57", br.BitsConsumed)
	}
}

func TestNewBitReaderTail(t *testing.T) {
	for _, test := range []struct {
		name string
		in   []byte
		want cursor
	}{
		{
			name: "one-byte",
			in:   []byte{0x01},
			// 63 mark bits plus 56 bits of zero padding.
			want: cursor{Bits: 0x01, Current: 0, BitsConsumed: 119},
		},
		{
			name: "two-bytes",
			in:   []byte{0xAB, 0x40},
			want: cursor{Bits: 0x40AB, Current: 0, BitsConsumed: 57 + 48},
		},
		{
			name: "seven-bytes",
			in:   []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x80},
			want: cursor{Bits: 0x0080060504030201, Current: 0, BitsConsumed: 64},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			br, err := NewBitReader(test.in, 0, len(test.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, snapshot(br)); diff != "" {
				t.Errorf("cursor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPeekBits(t *testing.T) {
	const window = 0xFF00000000000000
	if got := PeekBitsFast(0, window, 8); got != 0xFF {
		t.Errorf("PeekBitsFast(0, %#x, 8) = %#x, want 0xff", uint64(window), got)
	}
	for _, test := range []struct {
		consumed uint32
		window   uint64
		n        uint32
		want     uint64
	}{
		{0, window, 8, 0xFF},
		{8, window, 8, 0},
		{4, window, 4, 0xF},
		{0, 0x8000000000000000, 1, 1},
		{1, 0x8000000000000000, 1, 0},
		{0, 0xF0F0000000000000, 12, 0xF0F},
		{12, 0xFFFFFFFFFFFFFFFF, 0, 0},
	} {
		if got := PeekBits(test.consumed, test.window, test.n); got != test.want {
			t.Errorf("PeekBits(%d, %#x, %d) = %#x, want %#x",
				test.consumed, test.window, test.n, got, test.want)
		}
		if test.n > 0 {
			if got := PeekBitsFast(test.consumed, test.window, test.n); got != test.want {
				t.Errorf("PeekBitsFast(%d, %#x, %d) = %#x, want %#x",
					test.consumed, test.window, test.n, got, test.want)
			}
		}
	}
}

func TestIsEndOfStream(t *testing.T) {
	for _, test := range []struct {
		start, current int
		consumed       uint32
		want           bool
	}{
		{0, 0, 64, true},
		{2, 2, 64, true},
		{0, 0, 63, false},
		{0, 0, 65, false},
		{0, 1, 64, false},
		{1, 0, 64, false},
	} {
		if got := IsEndOfStream(test.start, test.current, test.consumed); got != test.want {
			t.Errorf("IsEndOfStream(%d, %d, %d) = %v, want %v",
				test.start, test.current, test.consumed, got, test.want)
		}
	}
}

func TestLoadOverflowLatch(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6, 7, 0x88, 9, 10, 11, 12, 13, 14, 15, 0x80}
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(br)
	br.BitsConsumed = 65

	for i := 0; i < 3; i++ {
		if !br.Load() {
			t.Fatalf("load %d: not exhausted on overflow", i)
		}
		if !br.Overflow {
			t.Fatalf("load %d: overflow not latched", i)
		}
	}
	if br.Bits != before.Bits || br.Current != before.Current {
		t.Error("overflowing load touched the window")
	}
}

func TestLoadAtStart(t *testing.T) {
	// 8-byte input places the cursor exactly at the start.
	in := []byte{1, 2, 3, 4, 5, 6, 7, 0x88}
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	want := snapshot(br)
	if !br.Load() {
		t.Fatal("not exhausted at start of range")
	}
	if diff := cmp.Diff(want, snapshot(br)); diff != "" {
		t.Errorf("load changed state (-want +got):\n%s", diff)
	}
}

func TestLoadMainline(t *testing.T) {
	in := make([]byte, 24)
	for i := range in {
		in[i] = byte(i + 1)
	}
	in[23] = 0x88
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	// 56 bits consumed: rewind 7 whole bytes, keep the remainder.
	if br.Load() {
		t.Fatal("exhausted with 9 bytes left behind the cursor")
	}
	want := cursor{Bits: le.Load64(in, 9), Current: 9, BitsConsumed: 0}
	if diff := cmp.Diff(want, snapshot(br)); diff != "" {
		t.Errorf("cursor mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMainlineNoWholeByte(t *testing.T) {
	in := make([]byte, 24)
	in[23] = 0x88
	br, err := NewBitReader(in, 0, len(in))
	if err != nil {
		t.Fatal(err)
	}
	br.BitsConsumed = 5
	if br.Load() {
		t.Fatal("exhausted")
	}
	want := cursor{Bits: le.Load64(in, 16), Current: 16, BitsConsumed: 5}
	if diff := cmp.Diff(want, snapshot(br)); diff != "" {
		t.Errorf("cursor mismatch (-want +got):\n%s", diff)
	}
}

// The branches near the start of the buffer reconstruct BitsConsumed with a
// whole-window multiplier; uint32 wraparound there is deliberate and the
// overflow latch picks it up on the next load.
func TestLoadNearStart(t *testing.T) {
	in := make([]byte, 12)
	for i := range in {
		in[i] = byte(i + 1)
	}
	in[11] = 0x88

	t.Run("clamped-to-start", func(t *testing.T) {
		br, err := NewBitReader(in, 0, len(in))
		if err != nil {
			t.Fatal(err)
		}
		// current=4, 56 bits consumed: a 7-byte rewind would pass the
		// start, so it clamps to 4 bytes and reports exhaustion.
		if !br.Load() {
			t.Fatal("final partial load not reported as exhausted")
		}
		wantConsumed := uint32(56)
		wantConsumed -= 4 * 64
		want := cursor{Bits: le.Load64(in, 0), Current: 0, BitsConsumed: wantConsumed}
		if diff := cmp.Diff(want, snapshot(br)); diff != "" {
			t.Errorf("cursor mismatch (-want +got):\n%s", diff)
		}
		if br.Overflow {
			t.Error("overflow latched on the final partial load")
		}
	})

	t.Run("partial-rewind", func(t *testing.T) {
		br, err := NewBitReader(in, 0, len(in))
		if err != nil {
			t.Fatal(err)
		}
		br.BitsConsumed = 24
		if br.Load() {
			t.Fatal("exhausted before reaching the start")
		}
		wantConsumed := uint32(24)
		wantConsumed -= 3 * 64
		want := cursor{Bits: le.Load64(in, 1), Current: 1, BitsConsumed: wantConsumed}
		if diff := cmp.Diff(want, snapshot(br)); diff != "" {
			t.Errorf("cursor mismatch (-want +got):\n%s", diff)
		}
		// The wrapped count trips the corruption latch on the next
		// refill.
		if !br.Load() || !br.Overflow {
			t.Error("wrapped consumed count did not latch overflow")
		}
	})
}
