package engine

import (
	"context"
	"errors"
)

// inspectProcess is a check+fix test double reporting one feedback per
// configured finding.
type inspectProcess struct {
	base   *Base
	thread *Thread

	findings []string
	checkErr error

	checkCalls int
	fixCalls   int
	lastArgs   Args
}

func newInspectProcess() *inspectProcess {
	thread := MustThread("Naming")
	return &inspectProcess{
		base: NewBase("Inspect",
			WithThreads(thread),
			WithDocumentation("Checks node naming conventions."),
			WithParameters(NewIntParameter("tolerance", 5, WithMinimum(0), WithMaximum(10))),
		),
		thread: thread,
	}
}

func (p *inspectProcess) Base() *Base { return p.base }

func (p *inspectProcess) Check(ctx context.Context, args Args) error {
	p.checkCalls++
	p.lastArgs = args
	p.base.ClearFeedback()

	if p.checkErr != nil {
		return p.checkErr
	}
	if err := p.base.CheckInterruption(ctx); err != nil {
		return err
	}

	for _, finding := range p.findings {
		p.base.AddFeedback(p.thread, NewFeedback(finding))
	}
	if len(p.findings) > 0 {
		p.base.SetFail(p.thread)
	} else {
		p.base.SetSuccess(p.thread)
	}
	return nil
}

func (p *inspectProcess) Fix(ctx context.Context, args Args) error {
	p.fixCalls++
	p.findings = nil
	return nil
}

// toolProcess only exposes a tool.
type toolProcess struct {
	base      *Base
	toolCalls int
}

func newToolProcess() *toolProcess {
	return &toolProcess{base: NewBase("Opener")}
}

func (p *toolProcess) Base() *Base { return p.base }

func (p *toolProcess) Tool(ctx context.Context, args Args) (any, error) {
	p.toolCalls++
	return "tool-handle", nil
}

// inertProcess implements no operation at all.
type inertProcess struct {
	base *Base
}

func newInertProcess() *inertProcess {
	return &inertProcess{base: NewBase("Inert")}
}

func (p *inertProcess) Base() *Base { return p.base }

var errSceneBroken = errors.New("scene graph is broken")
