// Command roomir derives room-acoustic parameters from measured impulse
// responses stored as WAV files.
//
// Usage:
//
//	roomir analyze [flags] file.wav ...
//	roomir bands [flags]
//	roomir sweep [flags] out.wav
//	roomir deconvolve [flags] recording.wav ir.wav
//	roomir version
//
// Examples:
//
//	roomir analyze hall.wav
//	roomir analyze --kind binaural --format json left-right.wav
//	roomir analyze --jobs 4 --temperature 22 --humidity 40 *.wav
//	roomir bands --sample-rate 44100 --order 8
//	roomir sweep --duration 10 --silence 3 sweep.wav
//	roomir deconvolve --duration 10 --length 3 recording.wav hall.wav
//
// Settings are read from roomir.yaml in the working directory or in
// $HOME/.config/roomir, from ROOMIR_* environment variables and from flags,
// in increasing order of precedence.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "roomir: %v\n", err)
		os.Exit(1)
	}
}
