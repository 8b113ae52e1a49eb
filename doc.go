// Package agnostic benchmarks data-layout-agnostic array kernels.
//
// The same vector magnitude and scalar gradient computations run over raw
// planar buffers, interleaved buffers, the static iterator facade of the
// array package, and the runtime capability containers of dynarray. A
// Runner allocates the grids, fills them with analytic fields, times each
// layout, optionally checks that all layouts agree, writes validation
// dumps and publishes a report.Report.
//
//	runner := agnostic.NewRunner(
//	    agnostic.WithWorkers(4),
//	    agnostic.WithVerify(true),
//	    agnostic.WithSink(report.NewTextSink(os.Stderr)),
//	)
//	rep, err := runner.RunMagnitude(ctx, 512)
//
// Kernels themselves live in the kernel package and can be used without a
// Runner.
package agnostic
