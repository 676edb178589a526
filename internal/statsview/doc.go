// Package statsview serves live runtime statistics over HTTP. It is only
// functional in builds with the statsview tag:
//
//	go build -tags statsview ./cmd/nemo
//
// Charts are then available at localhost:12600/debug/statsview and the
// standard pprof endpoints at localhost:12600/debug/pprof/.
package statsview
