package simulation

import (
	"context"
	"fmt"
	"math/rand"
)

// Agent is one simulation participant. Act runs the agent's turn for the
// current tick; a returned error is contained by the scheduler and never
// aborts the sweep over the remaining agents.
type Agent interface {
	Act(ctx context.Context, model *Model) error
}

// Scheduler holds an insertion-ordered collection of agents and steps each
// of them exactly once per tick, in a fresh uniformly random permutation.
//
// Strictly single-threaded: one agent's turn completes fully before the
// next begins, so there is no data race on the shared inventory even
// without locks. The random source is injected for deterministic tests.
type Scheduler struct {
	agents []Agent
	rng    *rand.Rand
	logger Logger
}

// NewScheduler creates a scheduler drawing its shuffles from rng.
func NewScheduler(rng *rand.Rand, logger Logger) *Scheduler {
	if logger == nil {
		logger = NopLogger{}
	}

	return &Scheduler{
		rng:    rng,
		logger: logger,
	}
}

// Register appends an agent to the collection. Agents registered while a
// tick is in progress take part from the next tick on.
func (s *Scheduler) Register(agent Agent) {
	s.agents = append(s.agents, agent)
}

// Agents returns a copy of the registered agents in insertion order.
func (s *Scheduler) Agents() []Agent {
	agents := make([]Agent, len(s.agents))
	copy(agents, s.agents)

	return agents
}

// Step produces a fresh random permutation of the registered agents and
// invokes each agent's turn once, synchronously, in that order.
func (s *Scheduler) Step(ctx context.Context, model *Model) {
	// Snapshot so that mid-tick registrations do not reorder this sweep.
	sweep := make([]Agent, len(s.agents))
	copy(sweep, s.agents)

	for _, index := range s.rng.Perm(len(sweep)) {
		s.runTurn(ctx, sweep[index], model)
	}
}

// runTurn executes a single agent turn with failure containment: errors and
// panics are logged and the sweep continues with the next agent.
func (s *Scheduler) runTurn(ctx context.Context, agent Agent, model *Model) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Error("agent turn panicked", "panic", fmt.Sprintf("%v", recovered))
		}
	}()

	if err := agent.Act(ctx, model); err != nil {
		s.logger.Warn("agent turn failed", "error", err.Error())
	}
}
