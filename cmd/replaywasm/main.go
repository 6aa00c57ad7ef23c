//go:build js && wasm

package main

import (
	"syscall/js"

	"bridge-lite/replay"
)

func main() {
	js.Global().Set("__bridgeReplayInit", js.FuncOf(func(this js.Value, args []js.Value) any {
		var raw []byte
		if len(args) > 0 {
			raw = []byte(args[0].String())
		}
		return string(replay.HandleRequest(raw).Marshal())
	}))

	select {}
}
