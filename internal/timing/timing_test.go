package timing

import "testing"

func TestPolicy_Classify_Boundaries(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		elapsed float64
		want    Flag
	}{
		{0, FlagTooFast},
		{9.999, FlagTooFast},
		{10, FlagNormal},
		{55, FlagNormal},
		{100, FlagNormal},
		{100.001, FlagTooSlow},
		{3600, FlagTooSlow},
	}
	for _, tt := range tests {
		got := p.Classify(Input{ElapsedSeconds: tt.elapsed, MinExpectedSeconds: 10})
		if got != tt.want {
			t.Errorf("Classify(elapsed=%v, min=10) = %s, want %s", tt.elapsed, got, tt.want)
		}
	}
}

func TestPolicy_Classify_QuestionOverride(t *testing.T) {
	p := DefaultPolicy()
	in := Input{ElapsedSeconds: 50, MinExpectedSeconds: 10, SlowMultiplier: 4}
	if got := p.Classify(in); got != FlagTooSlow {
		t.Errorf("Classify with override 4x = %s, want %s", got, FlagTooSlow)
	}
	in.SlowMultiplier = 0
	if got := p.Classify(in); got != FlagNormal {
		t.Errorf("Classify without override = %s, want %s", got, FlagNormal)
	}
}

func TestPolicy_Classify_FastFactor(t *testing.T) {
	p := Policy{FastFactor: 0.5, SlowMultiplier: 10}
	if got := p.Classify(Input{ElapsedSeconds: 6, MinExpectedSeconds: 10}); got != FlagNormal {
		t.Errorf("Classify(6s, half factor) = %s, want %s", got, FlagNormal)
	}
	if got := p.Classify(Input{ElapsedSeconds: 4.9, MinExpectedSeconds: 10}); got != FlagTooFast {
		t.Errorf("Classify(4.9s, half factor) = %s, want %s", got, FlagTooFast)
	}
}

func TestRunClassifiers_ReportsRule(t *testing.T) {
	p := DefaultPolicy()
	flag, rule := RunClassifiers(p.Classifiers(), Input{ElapsedSeconds: 1, MinExpectedSeconds: 10})
	if flag != FlagTooFast || rule != "too-fast" {
		t.Errorf("got (%s, %q), want (%s, %q)", flag, rule, FlagTooFast, "too-fast")
	}
	flag, rule = RunClassifiers(p.Classifiers(), Input{ElapsedSeconds: 20, MinExpectedSeconds: 10})
	if flag != FlagNormal || rule != "" {
		t.Errorf("got (%s, %q), want (%s, %q)", flag, rule, FlagNormal, "")
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Policy
		wantErr bool
	}{
		{"default", DefaultPolicy(), false},
		{"zero fast", Policy{FastFactor: 0, SlowMultiplier: 10}, true},
		{"negative slow", Policy{FastFactor: 1, SlowMultiplier: -1}, true},
		{"inverted", Policy{FastFactor: 5, SlowMultiplier: 2}, true},
		{"equal", Policy{FastFactor: 2, SlowMultiplier: 2}, false},
	}
	for _, tt := range tests {
		err := tt.p.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
