package worker

import "testing"

func TestPoolRunsAllJobs(t *testing.T) {
	p := NewPool[int](3, 10)
	for i := 0; i < 10; i++ {
		i := i
		p.Submit("job", func() int { return i * 2 })
	}
	p.Close()

	sum := 0
	for i := 0; i < 10; i++ {
		r := <-p.Results()
		if r.JobID != "job" {
			t.Errorf("JobID = %q", r.JobID)
		}
		sum += r.Output
	}
	if sum != 90 {
		t.Errorf("sum = %d, want 90", sum)
	}
}
