package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/logw"

	"github.com/corvuschess/corvus/pkg/engine"
	"github.com/corvuschess/corvus/pkg/engine/console"
	"github.com/corvuschess/corvus/pkg/engine/xboard"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/search"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero if iterative deepening should run untimed)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	noise = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvus [options]

corvus is a chess engine speaking the console debug protocol or xboard/CECP.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	root := search.AlphaBeta{
		Quiet: search.Quiescence{
			Eval: eval.Material{},
		},
	}
	e := engine.New(ctx, "corvus", "corvuschess", root,
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}),
		engine.WithZobrist(time.Now().UnixNano()),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case xboard.ProtocolName:
		driver, out := xboard.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, root, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
