package metrics

import "sync"

type FakeRecorder struct {
	Observed map[string]map[Outcome]int
	lock     sync.Mutex
}

func NewFakeRecorder() *FakeRecorder {
	return &FakeRecorder{Observed: make(map[string]map[Outcome]int)}
}

func (r *FakeRecorder) Observe(step string, outcome Outcome) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Observed[step]; !ok {
		r.Observed[step] = make(map[Outcome]int)
	}
	r.Observed[step][outcome]++
}

func (r *FakeRecorder) Count(step string, outcome Outcome) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Observed[step][outcome]
}
