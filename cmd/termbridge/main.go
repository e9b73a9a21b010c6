// Command termbridge runs the host side of the deck: it spawns a shell under
// a pty, keeps an emulated screen of its output and mirrors that screen to
// the deck over a serial port as snapshot frames.  Key event lines coming
// back from the deck are fed into the shell.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
	"github.com/phroun/purfecterm"
	"go.bug.st/serial"

	"github.com/picodeck/picodeck/wire"
)

func main() {
	port := flag.String("port", "/dev/serial0", "serial device connected to the deck")
	baud := flag.Int("baud", 115200, "serial baud rate")
	rows := flag.Int("rows", wire.MaxRows, "emulated terminal rows")
	cols := flag.Int("cols", wire.MaxCols, "emulated terminal columns")
	shell := flag.String("shell", "bash -i", "shell command to run under the pty")
	interval := flag.Duration("interval", 50*time.Millisecond, "minimum delay between snapshots")
	refresh := flag.Duration("refresh", time.Second, "resend interval for unchanged screens")
	mirror := flag.Bool("mirror", false, "mirror raw shell output to stdout")
	flag.Parse()
	log.SetFlags(0)

	argv, err := shellwords.Split(*shell)
	if err != nil || len(argv) == 0 {
		log.Fatalf("bad -shell %q: %v", *shell, err)
	}

	ptmx, err := pty.New()
	if err != nil {
		log.Fatal("open pty: ", err)
	}
	defer ptmx.Close()
	if err := ptmx.Resize(*cols, *rows); err != nil {
		log.Fatal("resize pty: ", err)
	}
	cmd := ptmx.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		log.Fatalf("start %q: %v", argv[0], err)
	}

	sp, err := serial.Open(*port, &serial.Mode{
		BaudRate: *baud,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		log.Fatalf("open %s: %v", *port, err)
	}
	defer sp.Close()

	screen := purfecterm.NewBuffer(*cols, *rows, 1000)
	parser := purfecterm.NewParser(screen)

	// Shell output feeds the emulated screen.  The buffer is internally
	// locked, so the snapshot loop below may read it concurrently.
	shellDone := make(chan struct{})
	go func() {
		defer close(shellDone)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				parser.Parse(buf[:n])
				if *mirror {
					os.Stdout.Write(buf[:n])
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// Event lines from the deck go into the shell.
	go func() {
		sc := bufio.NewScanner(sp)
		for sc.Scan() {
			writeEvent(ptmx, sc.Text())
		}
	}()

	var cur, last, frame []byte
	lastSent := time.Time{}
	tick := time.NewTicker(*interval)
	defer tick.Stop()
	for {
		select {
		case <-shellDone:
			cmd.Wait()
			return
		case <-tick.C:
		}

		cur = flatten(screen, *rows, *cols, cur[:0])
		if bytes.Equal(cur, last) && time.Since(lastSent) < *refresh {
			continue
		}
		frame = wire.AppendFrame(frame[:0], *rows, *cols, cur)
		if _, err := sp.Write(frame); err != nil {
			log.Fatal("serial write: ", err)
		}
		last = append(last[:0], cur...)
		lastSent = time.Now()
	}
}

// flatten appends the visible screen as rows*cols printable ASCII bytes.
func flatten(screen *purfecterm.Buffer, rows, cols int, dst []byte) []byte {
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := screen.GetCell(x, y).Char
			if c < 0x20 || c > 0x7e {
				c = ' '
			}
			dst = append(dst, byte(c))
		}
	}
	return dst
}

// writeEvent maps one upstream event line to the bytes the shell's pty
// expects.
func writeEvent(w io.Writer, line string) {
	ev, ok := wire.ParseEvent(line)
	if !ok {
		return
	}
	switch ev.Kind {
	case wire.KeyEnter:
		w.Write([]byte{'\n'})
	case wire.KeyBackspace:
		w.Write([]byte{0x7f}) // DEL, what terminals send for backspace
	default:
		io.WriteString(w, line[len("TXT:"):])
	}
}
