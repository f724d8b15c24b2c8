// Command bitdump inspects a backward zstd bitstream: it seeds the 64-bit
// window from the tail of a byte range, then optionally drains the stream
// window by window, reporting refills, exhaustion and the overflow latch.
// Useful when debugging entropy-stage encoders that emit such streams.
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/bitvault-io/zstdcore/zstd"
)

type options struct {
	Start    int    `long:"start" description:"Start offset of the stream within the input" default:"0"`
	End      int    `long:"end" description:"End offset of the stream within the input (0 means end of input)" default:"0"`
	Peek     uint32 `short:"p" long:"peek" description:"Bits consumed per step while draining" default:"16"`
	Drain    bool   `short:"d" long:"drain" description:"Drain the stream window by window"`
	Checksum bool   `short:"c" long:"checksum" description:"Print the XXH64 checksum of the range"`
	Hex      bool   `short:"x" long:"hex" description:"Treat the argument as hex bytes instead of a file name"`

	Args struct {
		Input string `positional-arg-name:"input"`
	} `positional-args:"true" required:"true"`
}

func main() {
	log.SetFlags(0)
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	if err := run(&opts); err != nil {
		log.Fatalf("bitdump: %v", err)
	}
}

func run(opts *options) error {
	var in []byte
	var err error
	if opts.Hex {
		in, err = hex.DecodeString(opts.Args.Input)
		if err != nil {
			return errors.Wrap(err, "decoding hex input")
		}
	} else {
		in, err = os.ReadFile(opts.Args.Input)
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
	}

	end := opts.End
	if end == 0 {
		end = len(in)
	}
	if opts.Start < 0 || end > len(in) || end < opts.Start {
		return errors.Errorf("range [%d, %d) outside input of %d bytes", opts.Start, end, len(in))
	}
	if opts.Peek < 1 || opts.Peek > 56 {
		return errors.Errorf("peek width %d outside [1, 56]", opts.Peek)
	}

	br, err := zstd.NewBitReader(in, opts.Start, end)
	if err != nil {
		return err
	}

	fmt.Printf("range\t[%d, %d)\n", opts.Start, end)
	if opts.Checksum {
		fmt.Printf("xxh64\t%016x\n", xxhash.Sum64(in[opts.Start:end]))
	}
	printState(br)

	if !opts.Drain {
		return nil
	}
	for step := 0; ; step++ {
		v := zstd.PeekBits(br.BitsConsumed, br.Bits, opts.Peek)
		fmt.Printf("step %d\tpeek(%d) = %#x\n", step, opts.Peek, v)
		br.BitsConsumed += opts.Peek

		exhausted := br.Load()
		printState(br)
		if exhausted {
			break
		}
	}
	if br.Overflow {
		return &zstd.MalformedInputError{Offset: int64(br.Current), Reason: "bitstream overflow while draining"}
	}
	fmt.Printf("end of stream\t%v\n", br.EndOfStream())
	return nil
}

func printState(br *zstd.BitReader) {
	fmt.Printf("window\t%#016x at %d (start %d), consumed %d\n",
		br.Bits, br.Current, br.Start(), br.BitsConsumed)
}
