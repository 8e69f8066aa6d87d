// Package conduit provides typed, first-class communication channels built
// on mutexes and condition variables rather than Go's native chan.
//
// A [Channel] carries values of one element type between producers and
// consumers, with blocking, non-blocking, and timeout-bounded operations,
// plus a select primitive ([SelectPoll], [SelectWait]) that arbitrates
// among several pending sends and receives across heterogeneous channels.
//
// # Construction
//
// [NewChannel] creates an unbuffered (rendezvous) channel; send and receive
// only complete in pairs. [NewBufferedChannel] creates a channel backed by
// a fixed-size ring buffer; sends succeed immediately while the buffer has
// room.
//
//	ch := conduit.NewBufferedChannel[int](4)
//	ch.Send(1)
//	v, ok := ch.Recv()
//
// # Blocking, non-blocking, and timed operations
//
// [Channel.Send] and [Channel.Recv] block until progress is possible or the
// channel is closed. [Channel.TrySend] and [Channel.TryRecv] never block,
// returning a three-valued [TrySendResult] / [TryResult] instead.
// [Channel.SendTimeout] and [Channel.RecvTimeout] park with an absolute
// deadline.
//
// # Close
//
// [Channel.Close] is idempotent and wakes every goroutine parked in Send,
// Recv, the timed variants, or [SelectWait] on that channel. Sends against
// a closed channel report Closed without blocking; receives drain any
// buffered residue before reporting no more values.
//
// # Select
//
// [RecvCase] and [SendCase] build opaque [SelectCase] values bound to one
// channel each. [SelectPoll] examines them once and returns the first
// ready case without blocking. [SelectWait] blocks, honoring an optional
// deadline, until some case is ready or every case's channel is closed.
// Select never performs the I/O itself — the caller still calls
// Send/Recv/TrySend/TryRecv on the winning channel.
//
// # Beyond the core
//
// The core channel and select implementation is deliberately small. Built
// on top of it: [Semaphore] (a channel-backed counting semaphore),
// [WorkerPool] (a fixed-size worker pool whose task queue is a Channel),
// [Race] (first-successful-result fan-in over a buffered channel), and
// [Result] / [SpawnResult] (a single asynchronous computation whose
// completion channel can itself be used as a SelectWait case). Higher-order
// combinators (Map, Filter, Merge, Broadcast, and friends) live in the
// sibling package [github.com/baxromumarov/conduit/conduitx].
package conduit
