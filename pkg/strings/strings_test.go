package strings

import (
	"testing"
)

func TestBytesToString(t *testing.T) {
	b := []byte("hello world")
	s := BytesToString(b)

	if s != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", s)
	}

	if BytesToString([]byte{}) != "" {
		t.Error("expected empty string for empty slice")
	}
}

func TestStringToBytes(t *testing.T) {
	b := StringToBytes("hello world")
	if string(b) != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", string(b))
	}

	if StringToBytes("") != nil {
		t.Error("expected nil slice for empty string")
	}
}

func TestClone(t *testing.T) {
	src := []byte("mutable")
	s := BytesToString(src)
	cloned := Clone(s)

	src[0] = 'X'
	if cloned != "mutable" {
		t.Errorf("clone must own its memory, got '%s'", cloned)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(8)
	b.WriteString("hello")
	b.WriteByte(' ')
	b.WriteBytes([]byte("world"))

	if b.String() != "hello world" {
		t.Errorf("got '%s'", b.String())
	}
	if b.Len() != 11 {
		t.Errorf("expected length 11, got %d", b.Len())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Error("reset must empty the builder")
	}
}

func TestSprintf(t *testing.T) {
	got := Sprintf("%s-%d", "item", 7)
	if got != "item-7" {
		t.Errorf("got '%s'", got)
	}

	// No-arg fast path returns the format unchanged.
	if Sprintf("plain") != "plain" {
		t.Error("no-arg Sprintf must pass through")
	}
}

func TestInternReturnsCanonicalCopy(t *testing.T) {
	p := NewInternPool(100)

	a := p.Intern(string([]byte("key")))
	b := p.Intern(string([]byte("key")))
	if a != b {
		t.Error("interned strings must be equal")
	}

	size, hits, misses := p.Stats()
	if size != 1 || hits != 1 || misses != 1 {
		t.Errorf("unexpected stats: size=%d hits=%d misses=%d", size, hits, misses)
	}
}

func TestInternBounded(t *testing.T) {
	p := NewInternPool(1)
	p.Intern("a")
	p.Intern("b") // over the bound, passes through

	size, _, _ := p.Stats()
	if size != 1 {
		t.Errorf("pool must stay bounded, size=%d", size)
	}
}
