package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[3;4Hhi"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if cw.Pending() != 0 {
		t.Errorf("pending = %d after Flush", cw.Pending())
	}
}

func TestChunkWriterCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	if col := cw.WriteCentered(10, 5, "abcd"); col != 8 {
		t.Errorf("col = %d, want 8", col)
	}
	cw.WriteStyled(1, 1, ColorBold, "x")
	_ = cw.Flush()

	got := out.String()
	if !strings.Contains(got, "\033[5;8Habcd") {
		t.Errorf("centered text missing in %q", got)
	}
	if !strings.HasSuffix(got, ColorBold+"x"+ColorReset) {
		t.Errorf("styled text not wrapped in %q", got)
	}
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("#", maxChunkSize*2+17)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(big))
	}
}
