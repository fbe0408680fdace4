package suggest

import (
	"fmt"
	"runtime/debug"
)

// PassFailure records a pass that panicked; its drafts are dropped.
type PassFailure struct {
	Pass  string
	Err   error
	Stack string
}

type Result struct {
	Drafts   []Draft
	Failures []PassFailure
}

// Generate runs passes against in. A failing pass does not stop the others.
func Generate(in Input, passes []Pass) Result {
	var res Result
	for _, p := range passes {
		drafts, err := runPass(p, in)
		if err != nil {
			res.Failures = append(res.Failures, *err)
			continue
		}
		res.Drafts = append(res.Drafts, drafts...)
	}
	return res
}

func runPass(p Pass, in Input) (drafts []Draft, failure *PassFailure) {
	defer func() {
		if r := recover(); r != nil {
			drafts = nil
			failure = &PassFailure{
				Pass:  p.Name,
				Err:   fmt.Errorf("suggestion pass %s panicked: %v", p.Name, r),
				Stack: string(debug.Stack()),
			}
		}
	}()
	return p.Run(in), nil
}
