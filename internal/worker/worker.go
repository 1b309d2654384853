// Package worker runs a rewriter and an interpreter behind a dedicated
// goroutine, exposing them to a caller as a command/event channel pair.
//
// ARCHITECTURE:
//
// Single-owner command loop:
// The actor goroutine exclusively owns the current generation; it is never
// exposed for external mutation, only replaced wholesale between commands.
// Commands are consumed strictly one at a time, in the order received, and
// every command produces exactly one event before the next command's work
// begins. No pipelining, no overtaking: replies correlate to requests by
// FIFO position alone.
//
// The loop blocks on a channel receive while idle: no polling, no sleep
// interval, no idle CPU.
//
// ERROR HANDLING: a failed command is converted into an error event and the
// actor keeps running with its state untouched. The actor never terminates
// because of a processing error, only in response to Terminate. There is no
// automatic retry; a failed command must be reissued deliberately.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hmoreau/lindel/internal/interpret"
	"github.com/hmoreau/lindel/internal/lsystem"
	"github.com/hmoreau/lindel/internal/process"
	"github.com/hmoreau/lindel/internal/rules"
	"github.com/hmoreau/lindel/internal/turtle"
)

// CommandType identifies a command kind.
type CommandType int

const (
	// CmdLoad replaces the current generation with a fresh iteration-0
	// generation built from the command's axiom and rule table.
	CmdLoad CommandType = iota + 1
	// CmdReset re-derives the iteration-0 generation from the axiom and
	// rules of the last load. Invalid before any load.
	CmdReset
	// CmdIterate runs the rewriter once on the current generation.
	CmdIterate
	// CmdInterpret runs the interpreter on the current generation.
	CmdInterpret
	// CmdTerminate stops the actor after replying. No further commands
	// are accepted.
	CmdTerminate
)

// String names the command for logs.
func (t CommandType) String() string {
	switch t {
	case CmdLoad:
		return "load"
	case CmdReset:
		return "reset"
	case CmdIterate:
		return "iterate"
	case CmdInterpret:
		return "interpret"
	case CmdTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("command(%d)", int(t))
	}
}

// Command is one inbound request. Axiom and Rules are only read for CmdLoad.
type Command[S comparable] struct {
	Type  CommandType
	Axiom []S
	Rules *rules.Table[S]
}

// Load builds a CmdLoad command.
func Load[S comparable](axiom []S, table *rules.Table[S]) Command[S] {
	return Command[S]{Type: CmdLoad, Axiom: axiom, Rules: table}
}

// EventType identifies a reply kind.
type EventType int

const (
	// EventLoaded acknowledges CmdLoad.
	EventLoaded EventType = iota + 1
	// EventReset acknowledges CmdReset.
	EventReset
	// EventIterated acknowledges CmdIterate and carries the new iteration.
	EventIterated
	// EventInterpreted acknowledges CmdInterpret and carries the
	// instruction list.
	EventInterpreted
	// EventTerminated acknowledges CmdTerminate; the events channel is
	// closed right after it is sent.
	EventTerminated
	// EventError replaces the expected success event when a command
	// failed or was issued in an invalid state.
	EventError
)

// Event is one outbound reply. Exactly one event is emitted per command,
// in command order.
type Event struct {
	Type EventType

	// Iteration carries the generation counter for EventIterated.
	Iteration uint64

	// Instructions carries the interpreter output for EventInterpreted.
	Instructions []turtle.Command

	// Err carries the failure for EventError. Protocol violations are
	// *ProtocolError; rewrite failures keep their original type.
	Err error
}

// Actor owns one rewriter, one interpreter, and the current generation on a
// dedicated goroutine.
type Actor[S comparable] struct {
	id       string
	rewriter process.Rewriter[S]
	interp   interpret.Interpreter[S]
	commands chan Command[S]
	events   chan Event
	log      *slog.Logger

	// Owned exclusively by the run goroutine.
	current *lsystem.System[S]
	initial *lsystem.System[S]
}

// backlog bounds how many commands may be issued ahead of reading their
// events before the sender blocks. Fire-and-forget batches up to this size
// (send all, then drain all) cannot deadlock.
const backlog = 16

// Start spawns the actor goroutine and returns its handle. The caller talks
// to the actor only through Commands and Events; sending Terminate is the
// only way to stop it.
func Start[S comparable](rewriter process.Rewriter[S], interp interpret.Interpreter[S]) *Actor[S] {
	a := &Actor[S]{
		id:       uuid.Must(uuid.NewV7()).String(),
		rewriter: rewriter,
		interp:   interp,
		commands: make(chan Command[S], backlog),
		events:   make(chan Event, backlog),
	}
	a.log = slog.Default().With("actor", a.id)
	go a.run()
	return a
}

// Commands returns the inbound channel. Callers must not send after
// Terminate; the actor stops draining once it has replied Terminated.
func (a *Actor[S]) Commands() chan<- Command[S] {
	return a.commands
}

// Events returns the outbound channel. It carries exactly one event per
// command, in command order, and is closed after EventTerminated.
func (a *Actor[S]) Events() <-chan Event {
	return a.events
}

// Send is shorthand for pushing a command onto the inbound channel.
func (a *Actor[S]) Send(cmd Command[S]) {
	a.commands <- cmd
}

// run is the actor's command loop. Blocks on the inbound channel between
// commands; each command is fully processed and replied to before the next
// receive.
func (a *Actor[S]) run() {
	a.log.Debug("worker starting")
	for cmd := range a.commands {
		start := time.Now()
		event := a.handle(cmd)
		a.events <- event
		a.log.Debug("command processed",
			"command", cmd.Type,
			"event", event.Type,
			"elapsed", time.Since(start),
		)

		if cmd.Type == CmdTerminate {
			close(a.events)
			a.log.Debug("worker stopped")
			return
		}
	}
}

// handle executes one command against the actor-owned state and builds its
// reply. State is only replaced on success: a failed iterate leaves the
// previous generation intact and available for further commands.
func (a *Actor[S]) handle(cmd Command[S]) Event {
	switch cmd.Type {
	case CmdLoad:
		a.initial = lsystem.New(cmd.Axiom, cmd.Rules)
		a.current = a.initial
		a.log.Info("generation loaded", "axiom_len", len(cmd.Axiom), "rules", cmd.Rules.Len())
		return Event{Type: EventLoaded}

	case CmdReset:
		if a.current == nil {
			return a.errorEvent(cmd, newNothingLoadedError(cmd.Type))
		}
		a.current = a.initial
		a.log.Info("generation reset")
		return Event{Type: EventReset}

	case CmdIterate:
		if a.current == nil {
			return a.errorEvent(cmd, newNothingLoadedError(cmd.Type))
		}
		next, err := a.rewriter.Rewrite(a.current)
		if err != nil {
			return a.errorEvent(cmd, err)
		}
		a.current = next
		a.log.Info("generation iterated", "iteration", next.Iteration(), "len", next.Len())
		return Event{Type: EventIterated, Iteration: next.Iteration()}

	case CmdInterpret:
		if a.current == nil {
			return a.errorEvent(cmd, newNothingLoadedError(cmd.Type))
		}
		instructions, err := a.interp.Interpret(a.current)
		if err != nil {
			return a.errorEvent(cmd, err)
		}
		a.log.Info("generation interpreted", "instructions", len(instructions))
		return Event{Type: EventInterpreted, Instructions: instructions}

	case CmdTerminate:
		a.log.Info("worker terminating")
		return Event{Type: EventTerminated}

	default:
		return a.errorEvent(cmd, &ProtocolError{
			Command: cmd.Type,
			Message: "unknown command",
		})
	}
}

func (a *Actor[S]) errorEvent(cmd Command[S], err error) Event {
	a.log.Error("command failed", "command", cmd.Type, "error", err)
	return Event{Type: EventError, Err: err}
}
