// Package profile provides optional runtime profiling for argot.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag, [Enabled] is false, [Modes] is empty and [Profiler.Start]
// returns a no-op.
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Profiles are written to [Profiler.Path]:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/argot"}
//	defer p.Start().Stop()
//
// Analyze the output with the pprof tool:
//
//	go tool pprof -http=: /tmp/argot/cpu.pprof
//
// Builds with the tag also register the [net/http/pprof] handlers on the
// default mux.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
