package cell

import (
	"bytes"
	"testing"
)

func TestAppendAndAvail(t *testing.T) {
	c := New(16)
	if c.Avail() != 16 {
		t.Fatalf("expected 16 avail, got %d", c.Avail())
	}
	if ok := c.Append([]byte("hello")); !ok {
		t.Fatal("append should succeed")
	}
	if c.Len() != 5 || c.Avail() != 11 {
		t.Fatalf("unexpected len/avail after append: %d/%d", c.Len(), c.Avail())
	}
}

func TestAppendOverflowIsNoOp(t *testing.T) {
	c := New(4)
	if ok := c.Append([]byte("toolong")); ok {
		t.Fatal("append exceeding capacity should fail")
	}
	if c.Len() != 0 {
		t.Fatalf("expected no bytes written, got %d", c.Len())
	}
}

func TestClearResetsCell(t *testing.T) {
	c := New(8)
	c.Append([]byte("abc"))
	c.SetStatus(Full)
	c.Clear()
	if !c.Empty() || c.Status() != Free {
		t.Fatalf("expected empty/free after Clear, got len=%d status=%v", c.Len(), c.Status())
	}
	if ok := c.Append([]byte("xy")); !ok || c.Len() != 2 {
		t.Fatal("cell should accept new writes after Clear")
	}
}

func TestWriteToEmitsExactBytes(t *testing.T) {
	c := New(32)
	c.Append([]byte("line one\n"))
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 9 || buf.String() != "line one\n" {
		t.Fatalf("unexpected write result: n=%d buf=%q", n, buf.String())
	}
}

func TestBoundaryFitsExactly(t *testing.T) {
	c := New(5)
	if ok := c.Append([]byte("abcde")); !ok {
		t.Fatal("exact-fit append should succeed")
	}
	if c.Avail() != 0 {
		t.Fatalf("expected 0 avail, got %d", c.Avail())
	}
	if ok := c.Append([]byte("x")); ok {
		t.Fatal("append past capacity should fail")
	}
}
