package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	seqClear      = "\033[H\033[2J"
	seqEnterGame  = "\033[?1049h\033[?25l\033[H\033[2J"
	seqLeaveGame  = "\033[?25h\033[?1049l"
	writerBufSize = 8192

	// maxChunkSize keeps each write within one TCP segment on most links.
	maxChunkSize = 1400
)

// ChunkWriter collects one frame of cursor moves and text, then hands it to
// the underlying writer in maxChunkSize pieces on Flush. Canvas.Render
// writes into it through io.Writer.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	num    [20]byte
	offCol int
	offRow int
}

// NewChunkWriter returns a ChunkWriter on w. Every position passed to it is
// shifted by the given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, writerBufSize),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor jump to the 1-based canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.num[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.num[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt queues s at the 1-based canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// WriteStyled queues s at (col, row) wrapped in an ANSI text attribute
// such as ColorBold and a reset.
func (cw *ChunkWriter) WriteStyled(col, row int, style, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(style)
	cw.frame.WriteString(s)
	cw.frame.WriteString(ColorReset)
}

// WriteCentered queues s on row so that it is centered on centerX and
// returns the starting column.
func (cw *ChunkWriter) WriteCentered(centerX, row int, s string) int {
	col := centerX - len(s)/2
	cw.WriteAt(col, row, s)
	return col
}

// Clear queues a full terminal clear ahead of the rest of the frame.
func (cw *ChunkWriter) Clear() {
	cw.frame.WriteString(seqClear)
}

// Pending reports how many bytes are queued for the next Flush.
func (cw *ChunkWriter) Pending() int {
	return cw.frame.Len()
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the queued frame and empties the queue.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the terminal behind os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears w immediately, bypassing any frame in progress.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// EnterGameScreen switches w to the alternate buffer, hides the cursor and
// clears it. LeaveGameScreen undoes it and restores the shell scrollback.
func EnterGameScreen(w io.Writer) {
	io.WriteString(w, seqEnterGame)
}

func LeaveGameScreen(w io.Writer) {
	io.WriteString(w, seqLeaveGame)
}
