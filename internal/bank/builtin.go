package bank

import (
	"sync"

	"github.com/abhisek/calcexam/internal/answer"
)

// BuiltinName is the display name of the default bank.
const BuiltinName = "Cálculo diferencial: límites y derivadas"

var (
	builtinOnce sync.Once
	builtinBank *Bank
)

// Default returns the built-in bank. Derivative references are computed
// once, on first use.
func Default() *Bank {
	builtinOnce.Do(func() {
		b, err := Build(BuiltinName, BuiltinDefinitions(), answer.NewNormalizer(answer.Options{}))
		if err != nil {
			panic("bank: built-in questions are invalid: " + err.Error())
		}
		builtinBank = b
	})
	return builtinBank
}

// BuiltinDefinitions returns the textual definitions of the default bank.
func BuiltinDefinitions() []Definition {
	return []Definition{
		// Limits
		{
			ID:                 "lim-linear",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→2 (3x − 9)",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "-3",
			MinExpectedSeconds: 10,
			Hint:               "La función es continua: sustituye x = 2.",
		},
		{
			ID:                 "lim-factor",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→3 (x² − 9)/(x − 3)",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "6",
			MinExpectedSeconds: 20,
			Hint:               "Factoriza el numerador: x² − 9 = (x − 3)(x + 3).",
		},
		{
			ID:                 "lim-sinc",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→0 sen(x)/x",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "1",
			MinExpectedSeconds: 10,
			Hint:               "Es un límite notable.",
		},
		{
			ID:                 "lim-rational-infinity",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→∞ (2x² + 1)/(x² − 4)",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "2",
			MinExpectedSeconds: 20,
			Hint:               "Divide numerador y denominador entre x².",
		},
		{
			ID:                 "lim-pole",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→0 1/x",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "zoo",
			MinExpectedSeconds: 15,
			Hint:               "Los límites laterales son +∞ y −∞. Escribe zoo para el infinito sin signo.",
		},
		{
			ID:                 "lim-cubic",
			Topic:              string(TopicLimits),
			Prompt:             "lim x→1 (x³ − 1)/(x − 1)",
			Kind:               string(answer.KindValue),
			ReferenceAnswer:    "3",
			MinExpectedSeconds: 25,
			Hint:               "x³ − 1 = (x − 1)(x² + x + 1).",
		},

		// Derivatives
		{
			ID:                 "der-polynomial",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = 3x⁴ − 2x + 7; y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "3x^4 - 2x + 7",
			MinExpectedSeconds: 15,
			Hint:               "Aplica la regla de la potencia término a término.",
		},
		{
			ID:                 "der-product-exp",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = x²·eˣ; y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "x^2 e^x",
			MinExpectedSeconds: 30,
			Hint:               "Regla del producto: (uv)' = u'v + uv'.",
		},
		{
			ID:                 "der-chain",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = sen(3x²); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "sin(3x^2)",
			MinExpectedSeconds: 30,
			Hint:               "Regla de la cadena: deriva el seno y multiplica por la derivada de 3x².",
		},
		{
			ID:                 "der-product-trig",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = x·sen(x); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "x sin(x)",
			MinExpectedSeconds: 20,
			Hint:               "Regla del producto.",
		},
		{
			ID:                 "der-quotient",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = (x² + 1)/(x − 1); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "(x^2 + 1)/(x - 1)",
			MinExpectedSeconds: 45,
			Hint:               "Regla del cociente: (u/v)' = (u'v − uv')/v².",
		},
		{
			ID:                 "der-trig",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = 3cos(x) − 5cot(x); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "3cos(x) - 5cot(x)",
			ReferenceAnswer:    "-3sin(x) + 5csc(x)^2",
			MinExpectedSeconds: 30,
			Hint:               "(cot x)' = −csc² x.",
		},
		{
			ID:                 "der-log",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = ln(x² + 1); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "ln(x^2 + 1)",
			MinExpectedSeconds: 25,
			Hint:               "(ln u)' = u'/u.",
		},
		{
			ID:                 "der-sqrt",
			Topic:              string(TopicDerivatives),
			Prompt:             "y = √(2x + 1); y' = ?",
			Kind:               string(answer.KindDerivative),
			SourceFunction:     "sqrt(2x + 1)",
			MinExpectedSeconds: 30,
			SlowMultiplier:     8,
			Hint:               "Escribe la raíz como potencia 1/2 y usa la regla de la cadena.",
		},

		// Critical points
		{
			ID:                 "crit-cubic",
			Topic:              string(TopicCriticalPoints),
			Prompt:             "Puntos críticos de f(x) = x³ − 3x (separa con comas)",
			Kind:               string(answer.KindSet),
			SourceFunction:     "x^3 - 3x",
			ReferenceSet:       []string{"-1", "1"},
			MinExpectedSeconds: 40,
			Hint:               "Resuelve f'(x) = 3x² − 3 = 0.",
		},
		{
			ID:                 "crit-cubic-shifted",
			Topic:              string(TopicCriticalPoints),
			Prompt:             "Puntos críticos de f(x) = x³ − 6x² + 9x + 1 (separa con comas)",
			Kind:               string(answer.KindSet),
			SourceFunction:     "x^3 - 6x^2 + 9x + 1",
			ReferenceSet:       []string{"1", "3"},
			MinExpectedSeconds: 45,
			Hint:               "f'(x) = 3(x − 1)(x − 3).",
		},
	}
}
