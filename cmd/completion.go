package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	query := map[string]complete.Predictor{"q": predict.Something}
	order := map[string]complete.Predictor{"s": predict.Something, "n": predict.Something}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"pivot": {Flags: map[string]complete.Predictor{
				"q":          predict.Something,
				"x":          predict.Something,
				"all":        predict.Nothing,
				"skip-lots":  predict.Nothing,
				"no-caption": predict.Nothing,
			}},
			"allocation": {},
			"stats":      {},
			"export": {Flags: map[string]complete.Predictor{
				"format":    predict.Set{"csv", "jsonl"},
				"lots-only": predict.Nothing,
				"q":         query["q"],
				"o":         predict.Files("*"),
			}},
			"market":  {},
			"sell":    {Flags: order},
			"buy":     {Flags: order},
			"insight": {Flags: map[string]complete.Predictor{"model": predict.Something}},
			"serve": {Flags: map[string]complete.Predictor{
				"addr":    predict.Something,
				"refresh": predict.Something,
			}},
			"search": {},
			"topic":  {},
		},
		Flags: map[string]complete.Predictor{
			"lots":     predict.Files("*.jsonl"),
			"backend":  predict.Something,
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"cash":     predict.Something,
			"quotes":   predict.Set{"yahoo", "eodhd"},
			"v":        predict.Nothing,
		},
	}
}
