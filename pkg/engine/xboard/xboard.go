// Package xboard implements a driver for the xboard/CECP engine protocol on
// top of pkg/engine: the command set a GUI such as XBoard or WinBoard speaks
// to a "chess engine communication protocol" engine (new, setboard, usermove,
// go, force, level, time, otim, sd, st, memory, ping, undo, remove,
// post/nopost, easy/hard, analyze/exit, result, quit).
package xboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/corvuschess/corvus/pkg/engine"
	"github.com/corvuschess/corvus/pkg/search"
	"github.com/corvuschess/corvus/pkg/search/searchctl"
)

const ProtocolName = "xboard"

// mode records whether the engine is expected to move, is merely analyzing,
// or is idle -- the xboard "side to move vs engine side" state machine.
type mode int

const (
	modeForce mode = iota
	modePlaying
	modeAnalyze
)

// Driver implements the xboard/CECP protocol over a line-oriented in/out
// pair, in the same channel-driven shape as pkg/engine/console.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	mode   mode
	post   bool
	ponder bool

	moveNr int

	// engineTime/otimTime hold the last "time"/"otim" report, the engine's
	// own clock and the opponent's, independent of color (the engine may
	// play either side across a game).
	engineTime, otimTime time.Duration
	timeSet              bool
	mps                  int

	stPerMove lang.Optional[time.Duration]
	sdLimit   lang.Optional[uint]

	active atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
		mode:        modeForce,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Xboard protocol initialized")

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			cmd, args := splitCommand(line)

			switch cmd {
			case "xboard", "computer", "name", "ics", "accepted", "rejected", "variant", "book", "?", "":
				// acknowledged, no-op

			case "protover":
				d.out <- fmt.Sprintf(`feature done=0 myname=%q ping=1 memory=1 setboard=1 debug=1 sigint=0 sigterm=0`, d.e.Name())
				d.out <- "feature name=1 ics=1"
				d.out <- "feature usermove=1"
				d.out <- "feature done=1"

			case "new":
				d.ensureInactive(ctx)
				_ = d.e.Reset(ctx, fen.Initial)
				d.mode = modePlaying
				d.moveNr = 0

			case "setboard":
				d.ensureInactive(ctx)
				if err := d.e.Reset(ctx, args); err != nil {
					logw.Errorf(ctx, "Invalid setboard fen %q: %v", args, err)
				}
				d.mode = modeForce

			case "force":
				d.ensureInactive(ctx)
				d.mode = modeForce

			case "go":
				d.mode = modePlaying
				d.think(ctx)

			case "usermove":
				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, args); err != nil {
					d.out <- "Illegal move: " + args
					break
				}
				d.moveNr++
				if d.mode == modePlaying {
					d.think(ctx)
				}

			case "undo":
				d.ensureInactive(ctx)
				_ = d.e.TakeBack(ctx)
				if d.moveNr > 0 {
					d.moveNr--
				}

			case "remove":
				d.ensureInactive(ctx)
				_ = d.e.TakeBack(ctx)
				_ = d.e.TakeBack(ctx)
				d.moveNr -= 2
				if d.moveNr < 0 {
					d.moveNr = 0
				}

			case "level":
				d.parseLevel(args)

			case "st":
				if secs, err := strconv.Atoi(strings.TrimSpace(args)); err == nil {
					d.stPerMove = lang.Some(time.Duration(secs) * time.Second)
				}

			case "sd":
				if depth, err := strconv.Atoi(strings.TrimSpace(args)); err == nil {
					d.sdLimit = lang.Some(uint(depth))
				}

			case "time":
				if cs, err := strconv.Atoi(strings.TrimSpace(args)); err == nil {
					d.engineTime = time.Duration(cs) * 10 * time.Millisecond
					d.timeSet = true
				}

			case "otim":
				if cs, err := strconv.Atoi(strings.TrimSpace(args)); err == nil {
					d.otimTime = time.Duration(cs) * 10 * time.Millisecond
					d.timeSet = true
				}

			case "memory":
				if mb, err := strconv.Atoi(strings.TrimSpace(args)); err == nil && mb > 0 {
					d.e.SetHash(uint(mb))
				}

			case "ping":
				d.out <- "pong " + args

			case "post":
				d.post = true

			case "nopost":
				d.post = false

			case "easy":
				d.ponder = false

			case "hard":
				d.ponder = true

			case "random":
				// acknowledged, no-op: evaluation noise is controlled separately.

			case "analyze":
				d.ensureInactive(ctx)
				d.mode = modeAnalyze
				d.startAnalysis(ctx, searchctl.Options{})

			case "exit":
				d.ensureInactive(ctx)
				d.mode = modeForce

			case "result":
				d.ensureInactive(ctx)
				d.mode = modeForce

			case "hint":
				// no stored ponder move to suggest; ignore.

			case "quit":
				d.ensureInactive(ctx)
				return

			default:
				d.out <- "Error (unknown command): " + cmd
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// think plays the opening book's top choice if one is available, otherwise
// launches a search under the current time control (or sd/st override) and
// reports the result asynchronously once it completes.
func (d *Driver) think(ctx context.Context) {
	if moves, err := d.e.Book(ctx); err == nil && len(moves) > 0 {
		if err := d.e.Move(ctx, moves[0].String()); err == nil {
			d.moveNr++
			d.out <- "move " + moves[0].String()
			return
		}
	}

	if !d.active.CompareAndSwap(false, true) {
		return
	}

	opt := d.searchOptions()

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		d.active.Store(false)
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			if d.post {
				d.out <- postString(pv)
			}
		}
		d.moveCompleted(ctx, last)
	}()
}

func (d *Driver) startAnalysis(ctx context.Context, opt searchctl.Options) {
	if !d.active.CompareAndSwap(false, true) {
		return
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		d.active.Store(false)
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}

	go func() {
		for pv := range out {
			d.out <- postString(pv)
		}
		d.active.Store(false)
	}()
}

// searchOptions builds the per-move options from st/sd overrides, falling
// back under an active clock to searchctl.TimeControl.Limits: a soft limit
// of the remaining time over twice the moves left (40 if unknown) and a
// hard limit of three times that. The increment is not used and no clamp
// is applied. The clock is attributed to the engine's current color, since
// "time"/"otim" name the engine and opponent, not White/Black.
func (d *Driver) searchOptions() searchctl.Options {
	var opt searchctl.Options
	if depth, ok := d.sdLimit.V(); ok {
		opt.DepthLimit = lang.Some(depth)
	}

	if per, ok := d.stPerMove.V(); ok {
		opt.TimeControl = lang.Some(searchctl.TimeControl{White: per, Black: per, Moves: 1})
		return opt
	}

	if d.timeSet {
		turn := d.e.Board().Turn()
		tc := searchctl.TimeControl{Moves: d.mps}
		if turn == board.White {
			tc.White, tc.Black = d.engineTime, d.otimTime
		} else {
			tc.White, tc.Black = d.otimTime, d.engineTime
		}
		opt.TimeControl = lang.Some(tc)
	}
	return opt
}

func (d *Driver) moveCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CompareAndSwap(true, false) {
		return
	}

	if len(pv.Moves) == 0 {
		result := d.e.Board().Result()
		d.out <- result.Outcome.String() + " {" + result.Reason.String() + "}"
		return
	}

	if err := d.e.Move(ctx, pv.Moves[0].String()); err != nil {
		logw.Errorf(ctx, "Failed to commit search move %v: %v", pv.Moves[0], err)
		return
	}
	d.moveNr++

	d.out <- "move " + pv.Moves[0].String()

	result := d.e.Board().Result()
	if result.Outcome != board.Undecided {
		d.out <- result.Outcome.String() + " {" + result.Reason.String() + "}"
		d.mode = modeForce
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.CompareAndSwap(true, false) {
		_, _ = d.e.Halt(ctx)
	}
}

// parseLevel handles "level <mps> <base> <inc>", e.g. "level 40 5 0" or
// "level 0 3:00 12".
func (d *Driver) parseLevel(args string) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return
	}

	mps, _ := strconv.Atoi(fields[0])
	base := parseClock(fields[1])
	incSec, _ := strconv.ParseFloat(fields[2], 64)

	d.mps = mps
	d.engineTime, d.otimTime = base, base
	d.timeSet = true
	d.stPerMove = lang.Optional[time.Duration]{}
	_ = incSec // the increment is parsed but not used by the time limits
}

// parseClock parses either "mm:ss" or a bare minute count into a Duration.
func parseClock(s string) time.Duration {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		min, _ := strconv.Atoi(s[:idx])
		sec, _ := strconv.Atoi(s[idx+1:])
		return time.Duration(min)*time.Minute + time.Duration(sec)*time.Second
	}
	min, _ := strconv.Atoi(s)
	return time.Duration(min) * time.Minute
}

func postString(pv search.PV) string {
	return fmt.Sprintf("%v %v %v %v %v", pv.Depth, pv.Score, pv.Time.Milliseconds()/10, pv.Nodes, board.PrintMoves(pv.Moves))
}

// splitCommand splits a protocol line into its command word and the
// remaining argument string.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}

	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:idx]), strings.TrimSpace(line[idx+1:])
}
