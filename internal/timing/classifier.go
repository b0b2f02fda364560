package timing

// Classifier is a rule that may flag an attempt.
// Returns ("", false) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(in Input) (Flag, bool)
}

// RunClassifiers executes classifiers in order.
// Returns the first match and its rule name, or FlagNormal if none apply.
func RunClassifiers(classifiers []Classifier, in Input) (Flag, string) {
	for _, c := range classifiers {
		if flag, ok := c.Classify(in); ok {
			return flag, c.Name()
		}
	}
	return FlagNormal, ""
}

// TooFastClassifier flags answers submitted before the minimum expected
// time has passed.
type TooFastClassifier struct {
	Factor float64
}

func (c *TooFastClassifier) Name() string { return "too-fast" }

func (c *TooFastClassifier) Classify(in Input) (Flag, bool) {
	factor := c.Factor
	if factor <= 0 {
		factor = DefaultFastFactor
	}
	if in.ElapsedSeconds < in.MinExpectedSeconds*factor {
		return FlagTooFast, true
	}
	return "", false
}

// TooSlowClassifier flags answers that took longer than a multiple of the
// minimum expected time.
type TooSlowClassifier struct {
	Multiplier float64
}

func (c *TooSlowClassifier) Name() string { return "too-slow" }

func (c *TooSlowClassifier) Classify(in Input) (Flag, bool) {
	mult := in.SlowMultiplier
	if mult <= 0 {
		mult = c.Multiplier
	}
	if mult <= 0 {
		mult = DefaultSlowMultiplier
	}
	if in.ElapsedSeconds > in.MinExpectedSeconds*mult {
		return FlagTooSlow, true
	}
	return "", false
}
