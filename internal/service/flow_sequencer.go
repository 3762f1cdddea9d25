package service

import (
	"context"
	"time"
)

// flowSequencer dispatches a preset question queue strictly one at a
// time: each question is sent only after the previous turn resolved,
// with a fixed pause in between. An explicit queue consumed by a loop
// (rather than a self-scheduling callback) keeps the call stack flat
// and leaves room to add cancellation later.
type flowSequencer struct {
	delay time.Duration
	ask   func(ctx context.Context, question string)
}

func newFlowSequencer(delay time.Duration, ask func(ctx context.Context, question string)) *flowSequencer {
	return &flowSequencer{delay: delay, ask: ask}
}

// Run consumes the queue until it is empty. ask blocks until the
// turn is appended, so questions never overlap.
func (s *flowSequencer) Run(ctx context.Context, questions []string) {
	queue := append([]string(nil), questions...)
	for len(queue) > 0 {
		question := queue[0]
		queue = queue[1:]

		s.ask(ctx, question)

		if len(queue) == 0 {
			return
		}
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return
		}
	}
}
